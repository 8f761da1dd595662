// Package main provides a CLI tool for seeding the database with an initial
// admin user and, optionally, demo catalog and BOM data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		txManager := postgres.NewTxManager(pool)
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@ias-productama.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, 'Admin', $3, $4, $4)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

// seedDemoData loads a small set of catalog entries and one BOM so a fresh
// install has something to transact against. Catalog rows go through the COPY
// protocol, BOM rows through a single batched round-trip.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	inserter := postgres.NewBatchInserter(txManager)
	executor := postgres.NewBatchExecutor(txManager)
	now := time.Now().UTC()

	catalogColumns := []string{"code", "name", "category", "sub_category", "kind", "stock", "created_at", "updated_at"}

	items := [][]any{
		{"GLG-001", "Gelang Manik", "Aksesoris", "Gelang", nil, 50, now, now},
		{"KLG-001", "Kalung Mutiara", "Aksesoris", "Kalung", nil, 30, now, now},
	}
	rawMaterials := [][]any{
		{"BB-001", "Manik Kayu 8mm", "Bahan Baku", nil, "butir", 5000, now, now},
		{"BB-002", "Tali Nilon 1mm", "Bahan Baku", nil, "meter", 800, now, now},
		{"BB-003", "Kawat Tembaga", "Bahan Penolong", nil, "meter", 400, now, now},
	}

	return txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := inserter.CopyFromSlice(ctx, "items", catalogColumns, items); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
		if _, err := inserter.CopyFromSlice(ctx, "raw_materials", catalogColumns, rawMaterials); err != nil {
			return fmt.Errorf("seed raw materials: %w", err)
		}

		headerID := id.New()
		queries := []postgres.BatchQuery{
			{
				SQL:  `INSERT INTO boms (id, product_code, product_name, category) VALUES ($1, $2, $3, $4)`,
				Args: []any{headerID, "GLG-001", "Gelang Manik", "Aksesoris"},
			},
			{
				SQL:  `INSERT INTO bom_lines (id, header_id, code, name, source_type, qty) VALUES ($1, $2, $3, $4, $5, $6)`,
				Args: []any{id.New(), headerID, "BB-001", "Manik Kayu 8mm", "RAW_MATERIAL", "24"},
			},
			{
				SQL:  `INSERT INTO bom_lines (id, header_id, code, name, source_type, qty) VALUES ($1, $2, $3, $4, $5, $6)`,
				Args: []any{id.New(), headerID, "BB-002", "Tali Nilon 1mm", "RAW_MATERIAL", "0.4"},
			},
		}
		if err := executor.ExecuteBatch(ctx, queries); err != nil {
			return fmt.Errorf("seed bom: %w", err)
		}

		log.Infow("demo data seeded",
			"items", len(items),
			"raw_materials", len(rawMaterials),
			"boms", 1)
		return nil
	})
}
