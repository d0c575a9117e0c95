package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/trainer-intake/cmd/flags"
	"github.com/ruteri/trainer-intake/config"
	"github.com/ruteri/trainer-intake/httpserver"
	"github.com/ruteri/trainer-intake/interfaces"
	"github.com/ruteri/trainer-intake/notify"
	"github.com/ruteri/trainer-intake/storage"
	"github.com/urfave/cli/v2"
)

var (
	devMemoryStoreFlag = &cli.BoolFlag{
		Name:  "dev-memory-store",
		Value: false,
		Usage: "keep registrations in memory instead of Postgres (local development only)",
	}
	migrateFlag = &cli.BoolFlag{
		Name:  "migrate",
		Value: false,
		Usage: "create the database schema before serving",
	}
)

func main() {
	app := &cli.App{
		Name:  "trainer-intake",
		Usage: "Serve the personal trainer registration portal",
		Flags: append([]cli.Flag{flags.ListenAddrFlag, devMemoryStoreFlag, migrateFlag}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String(flags.ListenAddrFlag.Name)
			logger := flags.SetupLogger(cCtx)

			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				logger.Error("Failed to load configuration", "err", err)
				return err
			}

			if err := cfg.ResolveAdminCredentials(cCtx.Context, logger); err != nil {
				logger.Error("Failed to resolve admin credentials", "err", err)
				return err
			}

			// A nil store makes the intake endpoint answer "not configured".
			var store interfaces.TrainerStore
			switch {
			case cCtx.Bool(devMemoryStoreFlag.Name):
				logger.Warn("Using in-memory store, registrations are lost on restart")
				store = storage.NewMemoryStore()
			case cfg.StorageConfigured():
				pg := storage.NewPostgresStore(cfg.DatabaseURL, cfg.DatabaseMaxConns, logger)
				defer pg.Close()
				if cCtx.Bool(migrateFlag.Name) {
					if err := pg.Migrate(cCtx.Context); err != nil {
						logger.Error("Failed to migrate database", "err", err)
						return err
					}
				}
				store = pg
			default:
				logger.Warn("No database connection string found, registrations will be rejected",
					"checked", config.DatabaseURLEnvVars)
			}

			var photos interfaces.PhotoStore
			if cfg.PhotoUploadsEnabled() {
				s3Store, err := storage.NewS3PhotoStore(storage.S3Config{
					Bucket:        cfg.S3.Bucket,
					Prefix:        cfg.S3.Prefix,
					Region:        cfg.S3.Region,
					Endpoint:      cfg.S3.Endpoint,
					AccessKey:     cfg.S3.AccessKey,
					SecretKey:     cfg.S3.SecretKey,
					PublicBaseURL: cfg.S3.PublicBaseURL,
				}, logger)
				if err != nil {
					logger.Error("Failed to create photo store", "err", err)
					return err
				}
				photos = s3Store
				logger.Info("Photo uploads enabled", "bucket", cfg.S3.Bucket)
			}

			var notifier interfaces.Notifier
			if cfg.NotificationsEnabled() {
				tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
				if err != nil {
					// Notifications are optional; serve without them.
					logger.Warn("Telegram notifications disabled", "err", err)
				} else {
					notifier = tg
					logger.Info("Telegram notifications enabled")
				}
			}

			handler := httpserver.NewHandler(store, photos, notifier, logger)
			serverCfg := flags.ConfigureServer(cCtx, logger, listenAddr, httpserver.AdminCredentials{
				User:     cfg.AdminUser,
				Password: cfg.AdminPassword,
			})

			server, err := httpserver.New(serverCfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server")
			server.RunInBackground()

			// Wait for termination signal
			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
