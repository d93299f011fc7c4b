package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budgy/backend/config"
	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	"github.com/budgy/backend/internal/integration/persistence/model"
)

// DefaultCategories are the system categories available to every user.
var DefaultCategories = []struct {
	Name string
	Type entity.TransactionType
}{
	{"Salary", entity.TransactionTypeIncome},
	{"Gift", entity.TransactionTypeIncome},
	{"Other", entity.TransactionTypeIncome},
	{"Sport", entity.TransactionTypeExpenditure},
	{"Car", entity.TransactionTypeExpenditure},
	{"Food", entity.TransactionTypeExpenditure},
}

// Seed inserts the reference data and the admin account. Running it again
// leaves existing rows untouched.
func Seed(ctx context.Context, db *gorm.DB, passwordService adapter.PasswordService, admin config.AdminConfig) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedTransactionTypes(tx); err != nil {
			return err
		}
		if err := seedUserActions(tx); err != nil {
			return err
		}
		if err := seedDefaultCategories(tx); err != nil {
			return err
		}
		return seedAdmin(tx, passwordService, admin)
	})
}

func seedTransactionTypes(tx *gorm.DB) error {
	types := make([]model.TransactionTypeModel, 0, len(entity.TransactionTypes))
	for _, t := range entity.TransactionTypes {
		types = append(types, model.TransactionTypeModel{Code: string(t), Name: t.DisplayName()})
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&types).Error; err != nil {
		return fmt.Errorf("failed to seed transaction types: %w", err)
	}
	return nil
}

func seedUserActions(tx *gorm.DB) error {
	actions := make([]model.UserActionModel, 0, len(entity.DefaultUserActions))
	for _, a := range entity.DefaultUserActions {
		actions = append(actions, model.UserActionModel{Name: string(a.Name), LogLevel: string(a.LogLevel)})
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&actions).Error; err != nil {
		return fmt.Errorf("failed to seed user actions: %w", err)
	}
	return nil
}

func seedDefaultCategories(tx *gorm.DB) error {
	for _, def := range DefaultCategories {
		var count int64
		if err := tx.Unscoped().Model(&model.CategoryModel{}).
			Where("is_default = ? AND name = ? AND type = ?", true, def.Name, string(def.Type)).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check default category %s: %w", def.Name, err)
		}
		if count > 0 {
			continue
		}

		category := entity.NewDefaultCategory(def.Name, def.Type)
		if err := tx.Create(model.CategoryFromEntity(category)).Error; err != nil {
			return fmt.Errorf("failed to seed default category %s: %w", def.Name, err)
		}
	}
	return nil
}

func seedAdmin(tx *gorm.DB, passwordService adapter.PasswordService, admin config.AdminConfig) error {
	if admin.Password == "" {
		slog.Info("Admin password not configured, skipping admin seed")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var existing model.UserModel
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := passwordService.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := entity.NewUser(email, hash, entity.RoleAdmin)
	if err := tx.Create(model.UserFromEntity(user)).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	slog.Info("Admin account seeded", "email", email)
	return nil
}
