package activities

import "context"

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=activities_test

// Store persists loaded activity histories, one collection per athlete.
type Store interface {
	Save(ctx context.Context, athleteID int64, collection Collection) error
	// Load returns found=false, with no error, when nothing is stored for the athlete.
	Load(ctx context.Context, athleteID int64) (collection Collection, found bool, err error)
	Delete(ctx context.Context, athleteID int64) error
}
