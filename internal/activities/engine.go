package activities

import (
	"sync"
	"time"
)

// Engine keeps a filter and the collection it was applied to. Every setter changes a single
// criterion and recomputes the filtered result before returning.
type Engine struct {
	mu         sync.RWMutex
	collection Collection
	filter     Filter
	filtered   Collection
}

func NewEngine(collection Collection) *Engine {
	e := &Engine{
		collection: collection,
		filter:     DefaultFilter(),
	}
	e.filtered = Apply(collection, e.filter)
	return e
}

func (e *Engine) update(change func(f *Filter)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	change(&e.filter)
	e.filtered = Apply(e.collection, e.filter)
}

// SetFilter replaces the whole filter at once.
func (e *Engine) SetFilter(filter Filter) {
	e.update(func(f *Filter) { *f = filter })
}

func (e *Engine) SetIncludeCommutes(option IncludeOption) {
	e.update(func(f *Filter) { f.IncludeCommutes = option })
}

func (e *Engine) SetIncludePrivate(option IncludeOption) {
	e.update(func(f *Filter) { f.IncludePrivate = option })
}

func (e *Engine) SetIncludeVirtual(option IncludeOption) {
	e.update(func(f *Filter) { f.IncludeVirtual = option })
}

func (e *Engine) SetTitleText(text string) {
	e.update(func(f *Filter) { f.TitleText = text })
}

// SetMinAvgSpeed sets the minimum average speed in km/h, nil clears it.
func (e *Engine) SetMinAvgSpeed(kmh *float64) {
	e.update(func(f *Filter) { f.MinAvgSpeedKmh = copyPtr(kmh) })
}

func (e *Engine) SetAvgSpeedBetween(r *SpeedRange) {
	e.update(func(f *Filter) { f.AvgSpeedBetweenKmh = copyPtr(r) })
}

func (e *Engine) SetMinDistance(km *float64) {
	e.update(func(f *Filter) { f.MinDistanceKm = copyPtr(km) })
}

func (e *Engine) SetMaxDistance(km *float64) {
	e.update(func(f *Filter) { f.MaxDistanceKm = copyPtr(km) })
}

func (e *Engine) SetBefore(t *time.Time) {
	e.update(func(f *Filter) { f.Before = copyPtr(t) })
}

func (e *Engine) SetAfter(t *time.Time) {
	e.update(func(f *Filter) { f.After = copyPtr(t) })
}

// SetSportTypes replaces the sport type selection. Pass nil to clear it.
func (e *Engine) SetSportTypes(types SportTypeSet) {
	var selection SportTypeSet
	if types != nil {
		selection = NewSportTypeSet(types.Types()...)
	}
	e.update(func(f *Filter) { f.SportTypes = selection })
}

func (e *Engine) SetPosition(p *PositionFilter) {
	e.update(func(f *Filter) { f.Position = copyPtr(p) })
}

// Reset restores the default filter.
func (e *Engine) Reset() {
	e.SetFilter(DefaultFilter())
}

// Filter returns a copy of the current filter.
func (e *Engine) Filter() Filter {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filter
}

func (e *Engine) Filtered() Collection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filtered
}

func (e *Engine) Summary() Summary {
	return Summarize(e.Filtered())
}

func (e *Engine) Page(offset, limit int) Page {
	return NewPage(e.Filtered(), offset, limit)
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
