package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberandwick/candle-shop/internal/config"
	"github.com/emberandwick/candle-shop/internal/logging"
	"github.com/emberandwick/candle-shop/internal/product"
)

func migrateCmd() *cobra.Command {
	var (
		seed       bool
		adminEmail string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			db, err := openDB(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := applySchema(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("schema applied", "statements", len(schema))

			if seed {
				if err := seedDatabase(cmd.Context(), db); err != nil {
					return err
				}
				logger.Info("seed data loaded")
			}
			if adminEmail != "" {
				if err := promoteAdmin(cmd.Context(), db, adminEmail); err != nil {
					return err
				}
				logger.Info("admin granted", "email", adminEmail)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load the sample catalog, categories and banners into empty tables")
	cmd.Flags().StringVar(&adminEmail, "grant-admin", "", "mark the registered profile with this email as an administrator")
	return cmd
}

func applySchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func seedDatabase(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		catalog := product.NewService(product.NewPostgresRepository(db))
		if err := catalog.ResetProducts(product.SampleCatalog()); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for i, c := range categorySeed {
			if _, err := db.ExecContext(ctx, `INSERT INTO categories (name, image_url, position) VALUES ($1, $2, $3)`, c.name, c.image, i); err != nil {
				return fmt.Errorf("seed category %q: %w", c.name, err)
			}
		}
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM banners`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		now := time.Now().UTC().Format(time.RFC3339)
		for i, img := range bannerSeed {
			if _, err := db.ExecContext(ctx, `INSERT INTO banners (image_url, link, alt, position, created_at) VALUES ($1, '', '', $2, $3)`, img, i, now); err != nil {
				return fmt.Errorf("seed banner %q: %w", img, err)
			}
		}
	}
	return nil
}

func promoteAdmin(ctx context.Context, db *sql.DB, email string) error {
	res, err := db.ExecContext(ctx, `UPDATE profiles SET is_admin = TRUE WHERE email = $1 AND NOT is_guest`, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no registered profile with email %q", email)
	}
	return nil
}
