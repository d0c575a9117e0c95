// Command dbmigrate creates the personal_trainers table and its indexes.
// It is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/ruteri/trainer-intake/cmd/flags"
	"github.com/ruteri/trainer-intake/config"
	"github.com/ruteri/trainer-intake/storage"
	"github.com/urfave/cli/v2"
)

var timeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Value: time.Minute,
	Usage: "abort the migration after this long",
}

func main() {
	app := &cli.App{
		Name:  "dbmigrate",
		Usage: "Create the trainer registration schema",
		Flags: append([]cli.Flag{flags.ConfigFileFlag, flags.EnvFileFlag, timeoutFlag}, flags.LogFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			cfg, err := flags.LoadConfig(cCtx)
			if err != nil {
				logger.Error("Failed to load configuration", "err", err)
				return err
			}
			if !cfg.StorageConfigured() {
				logger.Error("No database connection string found", "checked", config.DatabaseURLEnvVars)
				return errors.New("database not configured")
			}

			ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration(timeoutFlag.Name))
			defer cancel()

			store := storage.NewPostgresStore(cfg.DatabaseURL, 1, logger)
			defer store.Close()

			if err := store.Migrate(ctx); err != nil {
				logger.Error("Migration failed", "err", err)
				return err
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
