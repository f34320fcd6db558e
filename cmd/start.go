package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stock-matcher/core/config"
	"stock-matcher/core/export"
	"stock-matcher/core/loader"
	"stock-matcher/core/logger"
	"stock-matcher/core/middleware/auth"
	"stock-matcher/core/middleware/rayid"
	"stock-matcher/core/storage"

	"stock-matcher/feature/catalog"
	"stock-matcher/feature/integrity"
	"stock-matcher/feature/items"
	"stock-matcher/feature/racks"
	"stock-matcher/feature/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stock-matcher/docs/swagger"
)

// @title Stock Matcher API
// @version 1.0
// @description Rack scanning and master stock reconciliation.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock matcher server",
	Long:  `Starts the HTTP server, restores the saved session and syncs the master list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := contextOrBackground(cmd.Context())

		// 1. Configuration, logger, storage, state
		env, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer env.close()
		logg := env.logger
		zap.ReplaceGlobals(logg)
		cfg := env.cfg

		if created, err := storage.EnsureBucket(ctx, env.storage, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Storage bucket unavailable", zap.Error(err))
		} else if created {
			logg.Info("Created storage bucket", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 2. Master list. A failed sync leaves the API up; scans wait for a manual sync.
		if cfg.Catalog.SyncOnStart {
			if err := env.syncCatalog(ctx); err != nil {
				logg.Warn("Initial master list sync failed", zap.Error(err))
			}
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(racks.NewFeature(env.session, cfg.Server.ScanCooldown(), logg, env.metrics))
		mgr.Register(catalog.NewFeature(env.syncer, env.catalogs, logg))
		mgr.Register(items.NewFeature(env.session, logg))
		mgr.Register(reports.NewFeature(
			env.session,
			export.NewPublisher(env.storage, cfg.Storage.Bucket, cfg.Server.ExportPrefix),
			cfg.Storage.Bucket,
			logg,
			env.metrics,
		))
		mgr.Register(integrity.NewFeature(env.storage, env.db, env.catalogs, integrity.Options{
			Bucket:        cfg.Storage.Bucket,
			Prefixes:      bucketPrefixes(cfg),
			CatalogObject: catalogObject(cfg),
		}, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware
		app.Use(logger.Middleware(logg))

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(env.metrics.Handler()))

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Forced shutdown", zap.Error(err))
		}
		if err := env.session.Persist(context.Background()); err != nil {
			logg.Error("Failed to save state on shutdown", zap.Error(err))
		}
		return nil
	},
}

// catalogObject is the master list object checked for integrity, empty when the
// list is fetched by URL.
func catalogObject(cfg *config.Config) string {
	if cfg.Catalog.URL != "" {
		return ""
	}
	return cfg.Catalog.Object
}

func init() {
	RootCmd.AddCommand(startCmd)
}
