package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbrevik/gigwire/internal/store"
)

// Store talks to Postgres through a pgx pool. It satisfies both
// store.EventStore and store.ArtistStore.
type Store struct {
	pool *pgxpool.Pool
}

// Options tune how the pool is opened.
type Options struct {
	// MaxConns caps the pool size. Zero means 2.
	MaxConns int32

	// SimpleProtocol forces the simple query protocol, required when
	// connecting through PgBouncer in transaction pooling mode.
	SimpleProtocol bool
}

// Open parses the DSN, opens a pool and pings it.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	if opts.MaxConns <= 0 {
		opts.MaxConns = 2
	}
	cfg.MaxConns = opts.MaxConns
	if opts.SimpleProtocol {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

const eventColumns = `id, venue_id, start_time, title, description, cost,
	source_url, artist_id, image, status, source_type, ingestion_status`

func (s *Store) EventsInRange(ctx context.Context, venueID string, min, max time.Time) ([]*store.EventRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE venue_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time`,
		venueID, min.UTC(), max.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []*store.EventRow
	for rows.Next() {
		row, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return out, nil
}

func (s *Store) CreateEvent(ctx context.Context, patch store.EventPatch) (*store.EventRow, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO events (venue_id, start_time, title, description, cost,
			source_url, artist_id, image, status, source_type, ingestion_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+eventColumns,
		patch.VenueID, patch.StartTime.UTC(), patch.Title, patch.Description,
		patch.Cost, patch.SourceURL, patch.ArtistID, patch.Image,
		patch.Status, patch.SourceType, patch.IngestionStatus)
	out, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch store.EventPatch) (*store.EventRow, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE events
		SET venue_id = $2, start_time = $3, title = $4, description = $5,
			cost = $6, source_url = $7, artist_id = $8, image = $9,
			status = $10, source_type = $11, ingestion_status = $12
		WHERE id = $1
		RETURNING `+eventColumns,
		id, patch.VenueID, patch.StartTime.UTC(), patch.Title,
		patch.Description, patch.Cost, patch.SourceURL, patch.ArtistID,
		patch.Image, patch.Status, patch.SourceType, patch.IngestionStatus)
	out, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("updating event %s: no such row", id)
	}
	if err != nil {
		return nil, fmt.Errorf("updating event %s: %w", id, err)
	}
	return out, nil
}

func (s *Store) ArtistByName(ctx context.Context, name string) (*store.Artist, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, bio, image, created_at
		FROM artists
		WHERE LOWER(name) = LOWER($1)`,
		name)
	out, err := scanArtist(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying artist: %w", err)
	}
	return out, nil
}

func (s *Store) CreateArtist(ctx context.Context, name string) (*store.Artist, error) {
	// A concurrent insert of the same name loses on the LOWER(name) unique
	// index, so fall back to the lookup when nothing came back.
	row := s.pool.QueryRow(ctx, `
		INSERT INTO artists (name)
		VALUES ($1)
		ON CONFLICT (LOWER(name)) DO NOTHING
		RETURNING id, name, bio, image, created_at`,
		name)
	out, err := scanArtist(row)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, err := s.ArtistByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("creating artist %q: insert raced and lookup found nothing", name)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating artist %q: %w", name, err)
	}
	return out, nil
}

func scanEvent(row pgx.Row) (*store.EventRow, error) {
	var e store.EventRow
	err := row.Scan(&e.ID, &e.VenueID, &e.StartTime, &e.Title, &e.Description,
		&e.Cost, &e.SourceURL, &e.ArtistID, &e.Image, &e.Status,
		&e.SourceType, &e.IngestionStatus)
	if err != nil {
		return nil, err
	}
	e.StartTime = e.StartTime.UTC()
	return &e, nil
}

func scanArtist(row pgx.Row) (*store.Artist, error) {
	var a store.Artist
	if err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.Image, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
