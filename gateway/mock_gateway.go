// file: gateway/mock_gateway.go
package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"

	"english-hub/models"
)

// ensure MockGateway implements Gateway
var _ Gateway = (*MockGateway)(nil)

// MockGateway is a testify mock of Gateway.
type MockGateway struct {
	mock.Mock
}

// ListActivities (Mocked)
func (m *MockGateway) ListActivities(ctx context.Context, clubID string) ([]models.Activity, error) {
	args := m.Called(ctx, clubID)
	list, _ := args.Get(0).([]models.Activity)
	return list, args.Error(1)
}

// InsertActivity (Mocked)
func (m *MockGateway) InsertActivity(ctx context.Context, a models.NewActivity) (models.Activity, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(models.Activity), args.Error(1)
}

// ListComments (Mocked)
func (m *MockGateway) ListComments(ctx context.Context, activityID string) ([]models.Comment, error) {
	args := m.Called(ctx, activityID)
	list, _ := args.Get(0).([]models.Comment)
	return list, args.Error(1)
}

// InsertComment (Mocked)
func (m *MockGateway) InsertComment(ctx context.Context, c models.NewComment) (models.Comment, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Comment), args.Error(1)
}

// Close (Mocked)
func (m *MockGateway) Close() error {
	return m.Called().Error(0)
}
