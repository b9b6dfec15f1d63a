package activities

const DefaultPageLimit = 25

// Paginate returns limit activities starting at offset. A non-positive limit
// returns everything from offset on; an offset past the end yields an empty page.
func Paginate(collection Collection, offset, limit int) Collection {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(collection) {
		return Collection{}
	}

	end := len(collection)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return collection[offset:end]
}

type Page struct {
	Activities Collection `json:"activities"`
	Offset     int        `json:"offset"`
	Limit      int        `json:"limit"`
	Total      int        `json:"total"`
	Summary    Summary    `json:"summary"`
}

// NewPage paginates an already filtered collection and summarizes all of it.
func NewPage(filtered Collection, offset, limit int) Page {
	return Page{
		Activities: Paginate(filtered, offset, limit),
		Offset:     offset,
		Limit:      limit,
		Total:      len(filtered),
		Summary:    Summarize(filtered),
	}
}
