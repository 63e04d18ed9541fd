package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/asili-market/app/configs"
	"github.com/Rakhulsr/asili-market/app/db/seeders"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/models/migrations"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/routes"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func RunCli() {
	env := configs.LoadEnv()
	log := configs.NewLogger(env)

	cmd := &cli.Command{
		Name:  "asili",
		Usage: "Asili marketplace API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env, log)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API (default)",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, log)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Info().Msg("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Insert the default categories and sample products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "orders", Usage: "also place this many random demo orders"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := migratedDB(env, log)
					if err != nil {
						return err
					}
					if _, err := seeders.DBSeed(ctx, db, log); err != nil {
						return err
					}
					if n := int(c.Int("orders")); n > 0 {
						if _, err := seeders.SeedDemoOrders(ctx, db, n, log); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "write the keys to this file instead of stdout"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					out := c.String("out")
					if out == "" {
						return configs.WriteSessionKeys(os.Stdout)
					}

					f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
					if err != nil {
						return fmt.Errorf("failed to open %s: %w", out, err)
					}
					defer f.Close()
					if err := configs.WriteSessionKeys(f); err != nil {
						return err
					}
					log.Info().Str("file", out).Msg("Key generation complete. Copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin user, or reset the password of an existing one",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := migratedDB(env, log)
					if err != nil {
						return err
					}
					return createAdmin(ctx, repositories.NewUserRepository(db), c.String("username"), c.String("password"), log)
				},
			},
			{
				Name:  "prune-sessions",
				Usage: "Delete expired admin sessions",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, log)
					if err != nil {
						return err
					}
					n, err := repositories.NewSessionRepository(db).DeleteExpired(ctx, time.Now())
					if err != nil {
						return err
					}
					log.Info().Int64("deleted", n).Msg("Expired sessions pruned")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func migratedDB(env configs.ENV, log zerolog.Logger) (*gorm.DB, error) {
	db, err := configs.OpenConnection(env, log)
	if err != nil {
		return nil, err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

const minAdminPasswordLength = 8

func createAdmin(ctx context.Context, users repositories.UserRepositoryImpl, username, password string, log zerolog.Logger) error {
	if len(password) < minAdminPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minAdminPasswordLength)
	}

	existing, err := users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := users.UpdatePassword(ctx, existing.ID, password); err != nil {
			return err
		}
		log.Info().Str("username", username).Msg("Admin password reset")
		return nil
	}

	user := &models.User{Username: username, Password: password, IsAdmin: true}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	log.Info().Str("username", username).Uint("user_id", user.ID).Msg("Admin created")
	return nil
}

func serve(ctx context.Context, env configs.ENV, log zerolog.Logger) error {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}
	csrfKey, err := configs.LoadCSRFKey(env)
	if err != nil {
		return err
	}

	db, err := migratedDB(env, log)
	if err != nil {
		return err
	}
	log.Info().Str("driver", env.DBDriver).Msg("Database connected")

	router := routes.NewRouter(db, routes.Config{
		Logger:        log,
		SessionKeys:   keys,
		SessionMaxAge: env.SessionMaxAge,
		CSRFKey:       csrfKey,
		Secure:        env.Production(),
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
