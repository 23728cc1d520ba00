package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/subratpandeyy/The-Wedding-Shades/config"
	"github.com/subratpandeyy/The-Wedding-Shades/media"
	"github.com/subratpandeyy/The-Wedding-Shades/routes"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

const (
	mediaMaxDimension = 1200
	shutdownTimeout   = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	store, err := openStore(ctx, cfg)
	if err != nil {
		utils.LogError(err, "Failed to open post store")
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		utils.LogError(err, "Failed to migrate post store")
		return err
	}

	images := newMediaGateway(ctx, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(routes.Dependencies{Config: cfg, Store: store, Images: images}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogSuccess("Server running on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			utils.LogError(err, "Server stopped")
		}
		return err
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newMediaGateway builds the Cloudinary gateway. Without credentials the
// server still starts and every upload answers 500.
func newMediaGateway(ctx context.Context, cfg *config.Config) *media.Gateway {
	opts := media.Options{
		Folder:       cfg.UploadFolder,
		MaxBytes:     cfg.MaxUploadBytes,
		MaxDimension: mediaMaxDimension,
	}

	if !cfg.Cloudinary.Configured() {
		utils.LogWarn(nil, "Cloudinary credentials missing, image uploads are disabled")
		return media.NewGateway(nil, opts)
	}

	gateway, err := media.NewCloudinary(cfg.Cloudinary, opts)
	if err != nil {
		utils.LogWarn(err, "Cloudinary initialization failed, image uploads are disabled")
		return media.NewGateway(nil, opts)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := gateway.Verify(verifyCtx); err != nil {
		utils.LogWarn(err, "Cloudinary ping failed, uploads may not work")
	} else {
		utils.LogSuccess("Cloudinary connected")
	}
	return gateway
}
