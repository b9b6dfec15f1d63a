package activities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/stravastats/internal/telemetry/tracing"
)

const createActivitiesTableSQL = `
CREATE TABLE IF NOT EXISTS athlete_activities (
	athlete_id BIGINT PRIMARY KEY,
	activities JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// EnsureSchema creates the activities table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createActivitiesTableSQL); err != nil {
		return fmt.Errorf("create athlete_activities table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, athleteID int64, collection Collection) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.pgStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal activities: %w", err)
	}

	tag, err := s.db.Exec(
		ctx,
		`INSERT INTO athlete_activities (athlete_id, activities, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (athlete_id) DO UPDATE
		SET activities = EXCLUDED.activities, updated_at = EXCLUDED.updated_at`,
		athleteID, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert activities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("upsert activities: no rows affected")
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, athleteID int64) (_ Collection, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.pgStore.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var data []byte
	err = s.db.QueryRow(
		ctx,
		`SELECT activities FROM athlete_activities WHERE athlete_id = $1`,
		athleteID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select activities: %w", err)
	}

	collection := Collection{}
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, false, fmt.Errorf("unmarshal activities: %w", err)
	}
	return collection, true, nil
}

func (s *PostgresStore) Delete(ctx context.Context, athleteID int64) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.pgStore.delete")
	defer span.End()

	if _, err := s.db.Exec(ctx, `DELETE FROM athlete_activities WHERE athlete_id = $1`, athleteID); err != nil {
		return fmt.Errorf("delete activities: %w", err)
	}
	return nil
}
