// File: gateway/memory.go
package gateway

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"english-hub/models"
)

// Memory is an in-process gateway used for local runs and tests.
// Each insert gets a strictly increasing created_at.
type Memory struct {
	mu         sync.Mutex
	activities []models.Activity
	comments   []models.Comment
	last       time.Time
	failNext   error
	calls      map[string]int
}

// NewMemory creates an empty Memory gateway.
func NewMemory() *Memory {
	return &Memory{calls: make(map[string]int)}
}

// FailNext makes the next gateway call return err.
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// Calls reports how many times op was invoked ("ListActivities", "InsertComment", ...).
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls reports the number of gateway calls of any kind.
func (m *Memory) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// begin records the call and consumes an injected failure. Caller holds mu.
func (m *Memory) begin(op string) error {
	m.calls[op]++
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return wrap(op, err)
	}
	return nil
}

func (m *Memory) nextTimestamp() time.Time {
	now := time.Now().UTC()
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now
	return now
}

// ListActivities implements Gateway.
func (m *Memory) ListActivities(ctx context.Context, clubID string) ([]models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("ListActivities", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListActivities"); err != nil {
		return nil, err
	}

	out := make([]models.Activity, 0)
	for _, a := range m.activities {
		if a.ClubID == clubID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// InsertActivity implements Gateway.
func (m *Memory) InsertActivity(ctx context.Context, a models.NewActivity) (models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return models.Activity{}, wrap("InsertActivity", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("InsertActivity"); err != nil {
		return models.Activity{}, err
	}
	if a.ClubID == "" || a.ImageURL == "" {
		return models.Activity{}, wrap("InsertActivity", errors.New("club_id and image_url are required"))
	}

	row := models.Activity{
		ID:          uuid.NewString(),
		ClubID:      a.ClubID,
		ImageURL:    a.ImageURL,
		Title:       a.Title,
		Description: a.Description,
		CreatedAt:   m.nextTimestamp(),
	}
	m.activities = append(m.activities, row)
	return row, nil
}

// ListComments implements Gateway.
func (m *Memory) ListComments(ctx context.Context, activityID string) ([]models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("ListComments", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListComments"); err != nil {
		return nil, err
	}

	out := make([]models.Comment, 0)
	for _, c := range m.comments {
		if c.ActivityID == activityID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// InsertComment implements Gateway.
func (m *Memory) InsertComment(ctx context.Context, c models.NewComment) (models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return models.Comment{}, wrap("InsertComment", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("InsertComment"); err != nil {
		return models.Comment{}, err
	}
	if c.ActivityID == "" || c.CommentText == "" {
		return models.Comment{}, wrap("InsertComment", errors.New("activity_id and comment_text are required"))
	}

	row := models.Comment{
		ID:          uuid.NewString(),
		ActivityID:  c.ActivityID,
		CommentText: c.CommentText,
		CreatedAt:   m.nextTimestamp(),
	}
	m.comments = append(m.comments, row)
	return row, nil
}

// Close implements Gateway.
func (m *Memory) Close() error { return nil }
