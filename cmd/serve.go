package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"english-hub/config"
	"english-hub/controllers"
	"english-hub/gateway"
	"english-hub/logger"
	"english-hub/observability"
	"english-hub/services"
	"english-hub/templates"
	"english-hub/websocket"
	"english-hub/workspace"
)

const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web site",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), config.Load())
	},
}

// websocketURL derives the feed-updates endpoint from the public application URL.
func websocketURL(appURL string) string {
	switch {
	case strings.HasPrefix(appURL, "https://"):
		return "wss://" + strings.TrimPrefix(strings.TrimRight(appURL, "/"), "https://") + "/feed-updates"
	case strings.HasPrefix(appURL, "http://"):
		return "ws://" + strings.TrimPrefix(strings.TrimRight(appURL, "/"), "http://") + "/feed-updates"
	}
	return ""
}

// uploadOptions builds the workflow options; the asset function is only wired when configured.
func uploadOptions(cfg config.Config) services.UploadOptions {
	opts := services.UploadOptions{RequireTitle: cfg.RequireTitle}
	if cfg.AssetFunctionURL != "" {
		opts.Assets = services.NewAssetUploader(cfg.AssetFunctionURL, cfg.AssetFunctionToken)
	}
	return opts
}

// newServer assembles the gin engine and the workspace registry it serves from.
func newServer(cfg config.Config, gw gateway.Gateway, hub *websocket.Hub) (*gin.Engine, *workspace.Registry, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Frame-Options", "SAMEORIGIN")
		c.Next()
	})

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("englishhub", store))

	tmpl, err := templates.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	var notifier services.FeedNotifier
	var feedUpdates http.HandlerFunc
	wsURL := ""
	if hub != nil {
		notifier = hub
		feedUpdates = hub.ServeWs
		wsURL = websocketURL(cfg.ApplicationURL)
	}

	reg := workspace.NewRegistry(workspace.Deps{
		Gateway:  gw,
		Notifier: notifier,
		Upload:   uploadOptions(cfg),
	})

	controllers.RegisterRoutes(router, controllers.Routes{
		Auth:        controllers.NewAuthController(cfg.LoginPassphraseHash, reg),
		Pages:       controllers.NewPageController(cfg.ApplicationURL, wsURL),
		Uploads:     controllers.NewUploadController(),
		Comments:    controllers.NewCommentController(),
		Registry:    reg,
		FeedUpdates: feedUpdates,
		Metrics:     promhttp.Handler(),
	})
	return router, reg, nil
}

func runServe(parent context.Context, cfg config.Config) error {
	if cfg.LogDir != "" {
		closer, err := logger.InitFileLogger(cfg.LogDir, true)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closer.Close()
	}
	logger.SetLogLevel(cfg.Env)

	if cfg.CloudWatchEnabled {
		if err := observability.EnableCloudWatch(); err != nil {
			logger.Warn.Printf("runServe: CloudWatch disabled: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw, err := gateway.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()
	if m, ok := gw.(gateway.Migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			return err
		}
	}

	hub := websocket.NewHub(cfg.ApplicationURL)
	go hub.Run(ctx.Done())

	router, reg, err := newServer(cfg, gw, hub)
	if err != nil {
		return err
	}
	reg.CleanupInactive(ctx, sweepInterval, cfg.WorkspaceIdleTimeout)

	var handler http.Handler = router
	if cfg.XRayEnabled {
		handler = xray.Handler(xray.NewFixedSegmentNamer("english-hub"), router)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info.Printf("runServe: listening on %s (gateway=%s)", cfg.HTTPAddress, cfg.GatewayDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info.Println("runServe: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
