package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fitsync/internal/config"
	"fitsync/internal/db"
	"fitsync/internal/logging"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

// Seed prepares a fresh database: schema, the single admin balance row and,
// when ADMIN_EMAIL is set, an admin account.
func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations completed")

	if err := seed(context.Background(), repository.New(gormDB), cfg.AdminEmail); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed completed")
}

func seed(ctx context.Context, repos *repository.Repositories, adminEmail string) error {
	if err := repos.Balance.Ensure(ctx); err != nil {
		return fmt.Errorf("ensure admin balance: %w", err)
	}

	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	if adminEmail == "" {
		slog.Info("ADMIN_EMAIL not set, skipping admin account")
		return nil
	}

	user, err := repos.Users.FirstOrCreate(ctx, &model.User{
		Email: adminEmail,
		Name:  "Admin",
		Role:  model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin %s: %w", adminEmail, err)
	}
	if user.Role != model.RoleAdmin {
		if _, err := repos.Users.UpdateRole(ctx, adminEmail, model.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin %s: %w", adminEmail, err)
		}
	}
	slog.Info("admin account ready", "email", adminEmail)
	return nil
}
