// file: config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", "")
	t.Setenv("REQUIRE_TITLE", "")
	t.Setenv("WORKSPACE_IDLE_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, DriverMemory, cfg.GatewayDriver)
	assert.True(t, cfg.RequireTitle, "title is required unless disabled")
	assert.Equal(t, 30*time.Minute, cfg.WorkspaceIdleTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", DriverSQLite)
	t.Setenv("REQUIRE_TITLE", "false")
	t.Setenv("WORKSPACE_IDLE_TIMEOUT", "5m")
	t.Setenv("CLOUDWATCH_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.GatewayDriver)
	assert.False(t, cfg.RequireTitle)
	assert.Equal(t, 5*time.Minute, cfg.WorkspaceIdleTimeout)
	assert.True(t, cfg.CloudWatchEnabled)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("REQUIRE_TITLE", "maybe")
	t.Setenv("WORKSPACE_IDLE_TIMEOUT", "soon")

	cfg := Load()

	assert.True(t, cfg.RequireTitle)
	assert.Equal(t, 30*time.Minute, cfg.WorkspaceIdleTimeout)
}
