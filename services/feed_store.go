// file: services/feed_store.go
package services

import (
	"context"
	"errors"
	"sync"

	"english-hub/gateway"
	"english-hub/logger"
	"english-hub/models"
	"english-hub/observability"
)

// FeedNotifier is told about activities posted through a FeedStore.
type FeedNotifier interface {
	ActivityPosted(clubID string, activity models.Activity)
}

// FeedStore is a read-through cache of club activity feeds, newest first.
// Lists are only replaced by an explicit Load.
type FeedStore struct {
	gw       gateway.Gateway
	notifier FeedNotifier

	mu    sync.Mutex
	lists map[string][]models.Activity
}

// NewFeedStore creates an empty FeedStore. notifier may be nil.
func NewFeedStore(gw gateway.Gateway, notifier FeedNotifier) *FeedStore {
	return &FeedStore{
		gw:       gw,
		notifier: notifier,
		lists:    make(map[string][]models.Activity),
	}
}

// Activities returns the cached feed for clubID.
func (s *FeedStore) Activities(clubID string) []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Activity(nil), s.lists[clubID]...)
}

// Load fetches clubID's feed and replaces the cached list. On failure the prior list
// is kept and returned alongside the error.
func (s *FeedStore) Load(ctx context.Context, clubID string) ([]models.Activity, error) {
	list, err := s.gw.ListActivities(ctx, clubID)
	if err != nil {
		logger.Error.Printf("FeedStore.Load: failed to load activities for club %s: %v", clubID, err)
		observability.RecordGatewayFailure("ListActivities")
		return s.Activities(clubID), err
	}

	s.mu.Lock()
	s.lists[clubID] = list
	s.mu.Unlock()

	logger.Debug.Printf("FeedStore.Load: club %s has %d activities", clubID, len(list))
	return append([]models.Activity(nil), list...), nil
}

// Submit validates and encodes img, inserts a new activity and then reloads the club's feed.
// Validation failures never reach the gateway.
func (s *FeedStore) Submit(ctx context.Context, clubID string, img ImageFile, title, description string) error {
	if _, ok := models.LookupClub(clubID); !ok {
		return ErrUnknownClub
	}

	imageURL, err := EncodeDataURI(img)
	if err != nil {
		if IsValidation(err) {
			observability.RecordUploadRejected(rejectReason(err))
		}
		logger.Warn.Printf("FeedStore.Submit: rejected upload %q for club %s: %v", img.Name, clubID, err)
		return err
	}

	row, err := s.gw.InsertActivity(ctx, models.NewActivity{
		ClubID:      clubID,
		ImageURL:    imageURL,
		Title:       clip(title, models.MaxTitleLength),
		Description: clip(description, models.MaxDescriptionLength),
	})
	if err != nil {
		logger.Error.Printf("FeedStore.Submit: insert failed for club %s: %v", clubID, err)
		observability.RecordGatewayFailure("InsertActivity")
		return err
	}

	logger.Info.Printf("FeedStore.Submit: activity %s posted to club %s", row.ID, clubID)
	observability.RecordActivityPosted(clubID)
	if s.notifier != nil {
		s.notifier.ActivityPosted(clubID, row)
	}

	// the reload is issued only after the insert succeeded
	_, _ = s.Load(ctx, clubID)
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrImageTooLarge):
		return "too_large"
	case errors.Is(err, ErrNotAnImage):
		return "not_image"
	case errors.Is(err, ErrNoImage):
		return "empty"
	default:
		return "other"
	}
}
