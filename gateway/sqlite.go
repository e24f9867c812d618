// File: gateway/sqlite.go
package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"english-hub/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS club_activities (
	id TEXT PRIMARY KEY,
	club_id TEXT NOT NULL,
	image_url TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS club_activities_club_created_idx ON club_activities (club_id, created_at);

CREATE TABLE IF NOT EXISTS activity_comments (
	id TEXT PRIMARY KEY,
	activity_id TEXT NOT NULL,
	comment_text TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY (activity_id) REFERENCES club_activities(id)
);
CREATE INDEX IF NOT EXISTS activity_comments_activity_created_idx ON activity_comments (activity_id, created_at);
`

// timestamps are stored as fixed-width RFC3339 so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is a local-development gateway over modernc.org/sqlite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap("open", err)
	}
	// a single connection keeps writes serialised
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the schema.
func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return wrap("Migrate", fmt.Errorf("failed to enable foreign keys: %w", err))
	}
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return wrap("Migrate", err)
	}
	return nil
}

// now returns a timestamp strictly after the newest stored row.
func (s *SQLite) now(ctx context.Context, tx *sql.Tx, table string) (time.Time, error) {
	now := time.Now().UTC()
	var latest sql.NullString
	// #nosec G201 -- table is one of two constants
	if err := tx.QueryRowContext(ctx, "SELECT MAX(created_at) FROM "+table).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if latest.Valid {
		last, err := time.Parse(sqliteTimeLayout, latest.String)
		if err == nil && !now.After(last) {
			now = last.Add(time.Microsecond)
		}
	}
	return now, nil
}

// ListActivities implements Gateway.
func (s *SQLite) ListActivities(ctx context.Context, clubID string) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, club_id, image_url, title, description, created_at
		FROM club_activities WHERE club_id = ? ORDER BY created_at DESC, id DESC`, clubID)
	if err != nil {
		return nil, wrap("ListActivities", err)
	}
	defer rows.Close()

	out := make([]models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		var created string
		if err := rows.Scan(&a.ID, &a.ClubID, &a.ImageURL, &a.Title, &a.Description, &created); err != nil {
			return nil, wrap("ListActivities", err)
		}
		if a.CreatedAt, err = time.Parse(sqliteTimeLayout, created); err != nil {
			return nil, wrap("ListActivities", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListActivities", err)
	}
	return out, nil
}

// InsertActivity implements Gateway.
func (s *SQLite) InsertActivity(ctx context.Context, a models.NewActivity) (models.Activity, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Activity{}, wrap("InsertActivity", err)
	}
	defer tx.Rollback() //nolint:errcheck

	created, err := s.now(ctx, tx, "club_activities")
	if err != nil {
		return models.Activity{}, wrap("InsertActivity", err)
	}
	row := models.Activity{
		ID:          uuid.NewString(),
		ClubID:      a.ClubID,
		ImageURL:    a.ImageURL,
		Title:       a.Title,
		Description: a.Description,
		CreatedAt:   created,
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO club_activities (id, club_id, image_url, title, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		row.ID, row.ClubID, row.ImageURL, row.Title, row.Description, created.Format(sqliteTimeLayout)); err != nil {
		return models.Activity{}, wrap("InsertActivity", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Activity{}, wrap("InsertActivity", err)
	}
	return row, nil
}

// ListComments implements Gateway.
func (s *SQLite) ListComments(ctx context.Context, activityID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, activity_id, comment_text, created_at
		FROM activity_comments WHERE activity_id = ? ORDER BY created_at ASC, id ASC`, activityID)
	if err != nil {
		return nil, wrap("ListComments", err)
	}
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		var created string
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.CommentText, &created); err != nil {
			return nil, wrap("ListComments", err)
		}
		if c.CreatedAt, err = time.Parse(sqliteTimeLayout, created); err != nil {
			return nil, wrap("ListComments", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListComments", err)
	}
	return out, nil
}

// InsertComment implements Gateway.
func (s *SQLite) InsertComment(ctx context.Context, c models.NewComment) (models.Comment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Comment{}, wrap("InsertComment", err)
	}
	defer tx.Rollback() //nolint:errcheck

	created, err := s.now(ctx, tx, "activity_comments")
	if err != nil {
		return models.Comment{}, wrap("InsertComment", err)
	}
	row := models.Comment{
		ID:          uuid.NewString(),
		ActivityID:  c.ActivityID,
		CommentText: c.CommentText,
		CreatedAt:   created,
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO activity_comments (id, activity_id, comment_text, created_at)
		VALUES (?, ?, ?, ?)`,
		row.ID, row.ActivityID, row.CommentText, created.Format(sqliteTimeLayout)); err != nil {
		return models.Comment{}, wrap("InsertComment", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Comment{}, wrap("InsertComment", err)
	}
	return row, nil
}

// Close implements Gateway.
func (s *SQLite) Close() error {
	return s.db.Close()
}
