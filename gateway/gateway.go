// Package gateway binds the club hub to its hosted data service.
// File: gateway/gateway.go
package gateway

import (
	"context"
	"errors"
	"fmt"

	"english-hub/config"
	"english-hub/models"
)

// ErrGateway marks every failure reported by a gateway backend. Callers treat it as opaque.
var ErrGateway = errors.New("data gateway failure")

// Gateway is the query/insert contract consumed by the feed and comment stores.
type Gateway interface {
	// ListActivities returns a club's activities, newest first.
	ListActivities(ctx context.Context, clubID string) ([]models.Activity, error)
	// InsertActivity stores one activity and returns it with server-assigned fields.
	InsertActivity(ctx context.Context, a models.NewActivity) (models.Activity, error)
	// ListComments returns an activity's comments, oldest first.
	ListComments(ctx context.Context, activityID string) ([]models.Comment, error)
	// InsertComment stores one comment and returns it with server-assigned fields.
	InsertComment(ctx context.Context, c models.NewComment) (models.Comment, error)
	Close() error
}

// Migrator is implemented by gateways that can create their own tables.
type Migrator interface {
	Migrate(ctx context.Context) error
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrGateway, op, err)
}

// Open builds the gateway selected by cfg.GatewayDriver.
func Open(ctx context.Context, cfg config.Config) (Gateway, error) {
	switch cfg.GatewayDriver {
	case config.DriverMemory, "":
		return NewMemory(), nil
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg.PostgresURL)
	case config.DriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown gateway driver %q", cfg.GatewayDriver)
	}
}
