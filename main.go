package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/beheryahmed1991/subscription-tracker/internal/app"
	"github.com/beheryahmed1991/subscription-tracker/internal/auth"
	"github.com/beheryahmed1991/subscription-tracker/internal/config"
	"github.com/beheryahmed1991/subscription-tracker/internal/db"
	"github.com/beheryahmed1991/subscription-tracker/internal/logger"
	"github.com/beheryahmed1991/subscription-tracker/internal/migrate"
)

//go:generate swag init --parseDependency --parseInternal

// @title Subscription Tracker
// @version 1.0
// @description REST API for tracking recurring subscriptions and their monthly and yearly spend
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:  "subtrack",
		Usage: "track recurring subscriptions",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations and exit",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back the most recent migration"},
				},
				Action: runMigrations,
			},
			{
				Name:  "token",
				Usage: "issue a bearer token for a user (development helper)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "user id (UUID)", Required: true},
				},
				Action: issueToken,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "subtrack: %v\n", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	a, err := app.New(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(c.Context)
}

func runMigrations(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	dialect, err := db.DialectFor(cfg.DB.Driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	database, err := db.New(c.Context, db.Config{
		Driver:          cfg.DB.Driver,
		URL:             cfg.DB.DSN(),
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer database.Close()

	if c.Bool("down") {
		err = migrate.Down(c.Context, database, dialect)
	} else {
		err = migrate.Up(c.Context, database, dialect)
	}
	if err != nil {
		return err
	}

	version, err := migrate.Version(c.Context, database, dialect)
	if err != nil {
		return err
	}
	log.Info("migrations applied", "driver", cfg.DB.Driver, "version", version)
	return nil
}

func issueToken(c *cli.Context) error {
	user, err := uuid.Parse(c.String("user"))
	if err != nil {
		return errors.New("--user must be a UUID")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Generate(user)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
