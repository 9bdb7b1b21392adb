package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"dataconsult/internal/auth"
	"dataconsult/internal/config"
	"dataconsult/internal/db"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

var defaultCategories = []model.Category{
	{Name: "Data Engineering", Description: "Pipelines, warehouses and data platforms."},
	{Name: "Analytics", Description: "Reporting, BI and decision support."},
	{Name: "Machine Learning", Description: "Models in production."},
	{Name: "Company News", Description: "Announcements from the team."},
}

func main() {
	email := flag.String("email", "admin@dataconsult.local", "admin email")
	name := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "", "admin password (generated when empty)")
	withCategories := flag.Bool("categories", true, "create the default blog categories")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("starting seed script")

	cfg := config.MustLoad()

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations completed")

	ctx := context.Background()

	generated := *password == ""
	if generated {
		*password, err = randomPassword()
		if err != nil {
			logger.Error("generate password", "error", err)
			os.Exit(1)
		}
	}

	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB), *name, *email, *password)
	if err != nil {
		logger.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("admin created", "email", strings.ToLower(*email))
	} else {
		logger.Info("admin updated", "email", strings.ToLower(*email))
	}
	if generated {
		// printed once; it is not stored anywhere in clear text
		fmt.Printf("admin password: %s\n", *password)
	}

	if *withCategories {
		seeded, err := seedCategories(ctx, repository.NewCategoryRepository(gormDB), defaultCategories)
		if err != nil {
			logger.Error("failed to seed categories", "error", err)
			os.Exit(1)
		}
		logger.Info("categories seeded", "created", seeded, "total", len(defaultCategories))
	}

	logger.Info("seed completed successfully")
}

// seedAdmin creates the admin, or promotes and resets an existing account with that email.
func seedAdmin(ctx context.Context, repo repository.UserRepository, name, email, password string) (created bool, err error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("error checking user %s: %w", email, err)
	}

	if existing != nil {
		existing.Name = name
		existing.Role = model.RoleAdmin
		existing.PasswordHash = hash
		if err := repo.Update(ctx, existing); err != nil {
			return false, fmt.Errorf("error updating user %s: %w", email, err)
		}
		return false, nil
	}

	user := &model.User{Name: name, Email: email, PasswordHash: hash, Role: model.RoleAdmin}
	if err := repo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("error creating user %s: %w", email, err)
	}
	return true, nil
}

// seedCategories creates the categories whose slug is still free.
func seedCategories(ctx context.Context, repo repository.CategoryRepository, categories []model.Category) (seeded int, err error) {
	for _, category := range categories {
		category.Slug = slug.Make(category.Name)
		exists, err := repo.SlugExists(ctx, category.Slug)
		if err != nil {
			return seeded, fmt.Errorf("error checking category %s: %w", category.Slug, err)
		}
		if exists {
			continue
		}
		if err := repo.Create(ctx, &category); err != nil {
			return seeded, fmt.Errorf("error creating category %s: %w", category.Slug, err)
		}
		seeded++
	}
	return seeded, nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
