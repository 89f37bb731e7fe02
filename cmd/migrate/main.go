package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/migrations"
)

var (
	configPath    string
	migrationsDir string
	downTo        int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "SMC-RentalService database migrations",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config.toml")

	downCmd.Flags().Int64Var(&downTo, "to", -1, "roll back down to this version (0 resets the schema)")
	createCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "directory for new migration files")

	rootCmd.AddCommand(upCmd, downCmd, statusCmd, createCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProvider(func(ctx context.Context, p *goose.Provider) error {
			results, err := p.Up(ctx)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No pending migrations")
				return nil
			}
			for _, res := range results {
				fmt.Printf("OK   %s (%s)\n", res.Source.Path, res.Duration.Round(time.Millisecond))
			}
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration (or down to --to)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProvider(func(ctx context.Context, p *goose.Provider) error {
			if downTo >= 0 {
				results, err := p.DownTo(ctx, downTo)
				if err != nil {
					return err
				}
				for _, res := range results {
					fmt.Printf("DOWN %s\n", res.Source.Path)
				}
				return nil
			}

			res, err := p.Down(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("DOWN %s\n", res.Source.Path)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProvider(func(ctx context.Context, p *goose.Provider) error {
			statuses, err := p.Status(ctx)
			if err != nil {
				return err
			}
			for _, st := range statuses {
				applied := "pending"
				if st.State == goose.StateApplied {
					applied = st.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%-25s %s\n", applied, st.Source.Path)
			}
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new sequential SQL migration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goose.SetSequential(true)
		return goose.Create(nil, migrationsDir, args[0], "sql")
	},
}

// withProvider открывает БД из конфига и отдает goose провайдер над встроенными миграциями
func withProvider(fn func(ctx context.Context, p *goose.Provider) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	return fn(context.Background(), provider)
}
