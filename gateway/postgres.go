// File: gateway/postgres.go
package gateway

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"english-hub/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS club_activities (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	club_id     TEXT NOT NULL,
	image_url   TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS club_activities_club_created_idx ON club_activities (club_id, created_at DESC);

CREATE TABLE IF NOT EXISTS activity_comments (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	activity_id  UUID NOT NULL REFERENCES club_activities (id),
	comment_text TEXT NOT NULL CHECK (char_length(comment_text) <= 200),
	created_at   TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);
CREATE INDEX IF NOT EXISTS activity_comments_activity_created_idx ON activity_comments (activity_id, created_at);
`

// Postgres provides pgx-backed access to the hosted Postgres tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to url and verifies it with a ping.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, wrap("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrap("ping", err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool.
func NewPostgresFromPool(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return wrap("Migrate", err)
	}
	return nil
}

// ListActivities implements Gateway.
func (p *Postgres) ListActivities(ctx context.Context, clubID string) ([]models.Activity, error) {
	const query = `SELECT id::text, club_id, image_url, title, description, created_at
        FROM club_activities WHERE club_id=$1 ORDER BY created_at DESC, id DESC`

	rows, err := p.pool.Query(ctx, query, clubID)
	if err != nil {
		return nil, wrap("ListActivities", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Activity, error) {
		var a models.Activity
		err := row.Scan(&a.ID, &a.ClubID, &a.ImageURL, &a.Title, &a.Description, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, wrap("ListActivities", err)
	}
	return out, nil
}

// InsertActivity implements Gateway.
func (p *Postgres) InsertActivity(ctx context.Context, a models.NewActivity) (models.Activity, error) {
	const stmt = `INSERT INTO club_activities (club_id, image_url, title, description)
        VALUES ($1,$2,$3,$4)
        RETURNING id::text, club_id, image_url, title, description, created_at`

	var row models.Activity
	err := p.pool.QueryRow(ctx, stmt, a.ClubID, a.ImageURL, a.Title, a.Description).
		Scan(&row.ID, &row.ClubID, &row.ImageURL, &row.Title, &row.Description, &row.CreatedAt)
	if err != nil {
		return models.Activity{}, wrap("InsertActivity", err)
	}
	return row, nil
}

// ListComments implements Gateway.
func (p *Postgres) ListComments(ctx context.Context, activityID string) ([]models.Comment, error) {
	const query = `SELECT id::text, activity_id::text, comment_text, created_at
        FROM activity_comments WHERE activity_id::text=$1 ORDER BY created_at ASC, id ASC`

	rows, err := p.pool.Query(ctx, query, activityID)
	if err != nil {
		return nil, wrap("ListComments", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Comment, error) {
		var c models.Comment
		err := row.Scan(&c.ID, &c.ActivityID, &c.CommentText, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, wrap("ListComments", err)
	}
	return out, nil
}

// InsertComment implements Gateway.
func (p *Postgres) InsertComment(ctx context.Context, c models.NewComment) (models.Comment, error) {
	const stmt = `INSERT INTO activity_comments (activity_id, comment_text)
        VALUES ($1::uuid,$2)
        RETURNING id::text, activity_id::text, comment_text, created_at`

	var row models.Comment
	err := p.pool.QueryRow(ctx, stmt, c.ActivityID, c.CommentText).
		Scan(&row.ID, &row.ActivityID, &row.CommentText, &row.CreatedAt)
	if err != nil {
		return models.Comment{}, wrap("InsertComment", err)
	}
	return row, nil
}

// Close implements Gateway.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
