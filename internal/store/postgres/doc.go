// Package postgres implements the persistence gateway against a Postgres
// database using pgx connection pools.
//
// Expected schema:
//
//	CREATE TABLE artists (
//	    id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
//	    name       TEXT NOT NULL,
//	    bio        TEXT,
//	    image      TEXT,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE UNIQUE INDEX artists_name_ci ON artists (LOWER(name));
//
//	CREATE TABLE events (
//	    id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
//	    venue_id         TEXT NOT NULL,
//	    start_time       TIMESTAMPTZ NOT NULL,
//	    title            TEXT NOT NULL,
//	    description      TEXT,
//	    cost             DOUBLE PRECISION,
//	    source_url       TEXT,
//	    artist_id        TEXT REFERENCES artists(id),
//	    image            TEXT,
//	    status           TEXT NOT NULL,
//	    source_type      TEXT NOT NULL,
//	    ingestion_status TEXT NOT NULL
//	);
//	CREATE INDEX events_venue_start ON events (venue_id, start_time);
package postgres
