package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/khataflow/khataflow/internal/common"
	"github.com/khataflow/khataflow/internal/config"
	"github.com/khataflow/khataflow/internal/model"
	"github.com/khataflow/khataflow/internal/service"
	"github.com/khataflow/khataflow/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("could not open database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseAmount parses a user-supplied amount flag.
func parseAmount(value, flag string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s amount %q: %w", flag, value, err)
	}
	return d, nil
}

// parseMethod parses a user-supplied payment method flag.
func parseMethod(value string) (model.PaymentMethod, error) {
	switch strings.ToLower(value) {
	case "cash", "":
		return model.PaymentCash, nil
	case "digital", "upi", "online":
		return model.PaymentDigital, nil
	default:
		return "", fmt.Errorf("unknown payment method %q (want cash or digital)", value)
	}
}

// parseDate parses a user-supplied date flag, defaulting to today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}

	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return date, nil
}
