package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cmlabs-hris/empatt-backend-go/internal/config"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/empatt-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/empatt-backend-go/internal/service/auth"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "empattctl",
		Short:        "Administrative tasks for the attendance backend",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newAdminCmd())
	return root
}

// connect loads configuration and opens the database.
func connect(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logger.New(cfg.App))

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func withMigrator(ctx context.Context, fn func(*database.Migrator) error) error {
	_, db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(m *database.Migrator) error {
					return m.Up()
				})
			},
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back n migrations, or all of them when n is omitted",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n := 0
				if len(args) == 1 {
					var err error
					if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
						return fmt.Errorf("n must be a positive integer")
					}
				}
				return withMigrator(cmd.Context(), func(m *database.Migrator) error {
					return m.Down(n)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(m *database.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var username, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, nil)
			if err != nil {
				return err
			}
			authSvc := serviceAuth.NewAuthService(postgresql.NewAdminRepository(db), jwtService)

			created, err := authSvc.Register(cmd.Context(), auth.RegisterRequest{Username: username, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (id %s)\n", created.Username, created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "admin username")
	create.Flags().StringVar(&password, "password", "", "admin password (8-72 characters)")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
