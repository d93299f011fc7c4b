package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	for _, tt := range entity.TransactionTypes {
		require.NoError(t, db.Create(&model.TransactionTypeModel{Code: string(tt), Name: tt.DisplayName()}).Error)
	}
	for _, action := range entity.DefaultUserActions {
		require.NoError(t, db.Create(&model.UserActionModel{Name: string(action.Name), LogLevel: string(action.LogLevel)}).Error)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := entity.NewUser(email, "hash", entity.RoleUser)
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategoryRepository_Visibility(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	pets := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, alice.ID)
	bonus := entity.NewCategory("Bonus", entity.TransactionTypeIncome, bob.ID)
	for _, c := range []*entity.Category{food, pets, bonus} {
		require.NoError(t, repo.Create(ctx, c))
	}

	visible, err := repo.FindVisible(ctx, alice.ID, nil)
	require.NoError(t, err)
	names := make([]string, len(visible))
	for i, c := range visible {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Food", "Pets"}, names)

	income := entity.TransactionTypeIncome
	visible, err = repo.FindVisible(ctx, alice.ID, &income)
	require.NoError(t, err)
	assert.Empty(t, visible)

	exists, err := repo.ExistsVisibleByName(ctx, alice.ID, "fOOd", entity.TransactionTypeExpenditure, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsVisibleByName(ctx, alice.ID, "food", entity.TransactionTypeIncome, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsVisibleByName(ctx, alice.ID, "Bonus", entity.TransactionTypeIncome, nil)
	require.NoError(t, err)
	assert.False(t, exists, "another user's category is not visible")

	exists, err = repo.ExistsVisibleByName(ctx, alice.ID, "pets", entity.TransactionTypeExpenditure, &pets.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the renamed category itself is skipped")
}

func TestCategoryRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")

	pets := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, alice.ID)
	require.NoError(t, repo.Create(ctx, pets))
	require.NoError(t, repo.SoftDelete(ctx, pets.ID))

	found, err := repo.FindByID(ctx, pets.ID)
	require.NoError(t, err)
	assert.True(t, found.IsDeleted())

	visible, err := repo.FindVisible(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, visible)

	exists, err := repo.ExistsVisibleByName(ctx, alice.ID, "Pets", entity.TransactionTypeExpenditure, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.SoftDelete(ctx, pets.ID), domainerror.ErrCategoryNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}

func TestCategoryRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")

	pets := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, alice.ID)
	require.NoError(t, repo.Create(ctx, pets))

	pets.Name = "Animals"
	pets.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, pets))

	found, err := repo.FindByID(ctx, pets.ID)
	require.NoError(t, err)
	assert.Equal(t, "Animals", found.Name)

	missing := entity.NewCategory("Ghost", entity.TransactionTypeIncome, alice.ID)
	assert.ErrorIs(t, repo.Update(ctx, missing), domainerror.ErrCategoryNotFound)
}

func TestTransactionRepository_FiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	salary := entity.NewDefaultCategory("Salary", entity.TransactionTypeIncome)
	require.NoError(t, categories.Create(ctx, food))
	require.NoError(t, categories.Create(ctx, salary))

	add := func(owner uuid.UUID, c *entity.Category, date time.Time, amount int64) *entity.Transaction {
		txn := entity.NewTransaction(owner, c, date, decimal.NewFromInt(amount), "", nil)
		require.NoError(t, repo.Create(ctx, txn))
		return txn
	}
	add(alice.ID, food, day(2026, 2, 28), 5)
	newest := add(alice.ID, food, day(2026, 3, 15), 12)
	add(alice.ID, salary, day(2026, 3, 1), 3000)
	add(alice.ID, food, day(2026, 3, 31), 7)
	add(alice.ID, food, day(2026, 4, 1), 9)
	add(bob.ID, food, day(2026, 3, 10), 99)

	start, end := entity.MonthBounds(day(2026, 3, 10))
	march := adapter.TransactionFilter{UserID: alice.ID, StartDate: &start, EndDate: &end}

	all, err := repo.FindAllByFilter(ctx, march)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, day(2026, 3, 31), all[0].Transaction.Date)
	assert.Equal(t, day(2026, 3, 1), all[2].Transaction.Date)

	expenditure := entity.TransactionTypeExpenditure
	march.Type = &expenditure
	spent, err := repo.FindAllByFilter(ctx, march)
	require.NoError(t, err)
	require.Len(t, spent, 2)
	assert.Equal(t, "Food", spent[0].Category.Name)
	assert.Equal(t, "-7.00", spent[0].Transaction.Amount.StringFixed(2))

	page, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: alice.ID}, adapter.TransactionPagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Transactions, 2)
	assert.Equal(t, newest.ID, page.Transactions[0].Transaction.ID)

	empty, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: uuid.New()}, adapter.TransactionPagination{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Transactions)
}

func TestTransactionRepository_DeletedCategoryStillLoads(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")

	pets := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, alice.ID)
	require.NoError(t, categories.Create(ctx, pets))
	txn := entity.NewTransaction(alice.ID, pets, day(2026, 3, 3), decimal.NewFromInt(20), "vet", nil)
	require.NoError(t, repo.Create(ctx, txn))
	require.NoError(t, categories.SoftDelete(ctx, pets.ID))

	found, err := repo.FindByIDWithCategory(ctx, txn.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.True(t, found.Category.IsDeleted())

	expenditure := entity.TransactionTypeExpenditure
	all, err := repo.FindAllByFilter(ctx, adapter.TransactionFilter{UserID: alice.ID, Type: &expenditure})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTransactionRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")

	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	require.NoError(t, categories.Create(ctx, food))
	txn := entity.NewTransaction(alice.ID, food, day(2026, 3, 3), decimal.NewFromInt(20), "", nil)
	require.NoError(t, repo.Create(ctx, txn))

	txn.Amount = decimal.RequireFromString("-15.75")
	txn.Location = &entity.GeoLocation{Lat: 52.52, Lng: 13.405}
	txn.SetAttachment("receipt.txt", "key", time.Now())
	require.NoError(t, repo.Update(ctx, txn))

	found, err := repo.FindByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "-15.75", found.Amount.StringFixed(2))
	require.NotNil(t, found.Location)
	assert.Equal(t, 52.52, found.Location.Lat)
	assert.Equal(t, "receipt.txt", found.AttachmentName)

	txn.ClearAttachment(time.Now())
	txn.Location = nil
	require.NoError(t, repo.Update(ctx, txn))
	found, err = repo.FindByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Location)
	assert.False(t, found.HasAttachment())

	require.NoError(t, repo.Delete(ctx, txn.ID))
	_, err = repo.FindByID(ctx, txn.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, txn.ID), domainerror.ErrTransactionNotFound)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	categories := NewCategoryRepository(db)
	transactions := NewTransactionRepository(db)
	logs := NewActionLogRepository(db)
	tokens := NewTokenRepository(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	pets := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, alice.ID)
	require.NoError(t, categories.Create(ctx, food))
	require.NoError(t, categories.Create(ctx, pets))
	require.NoError(t, transactions.Create(ctx, entity.NewTransaction(alice.ID, pets, day(2026, 3, 1), decimal.NewFromInt(1), "", nil)))
	require.NoError(t, transactions.Create(ctx, entity.NewTransaction(bob.ID, food, day(2026, 3, 1), decimal.NewFromInt(2), "", nil)))
	require.NoError(t, tokens.SaveRefreshToken(ctx, "alice-token", alice.ID, time.Now().Add(time.Hour)))
	require.NoError(t, logs.Create(ctx, entity.NewUserActionLog(entity.ActionLoginSuccess, &alice.ID, "")))

	require.NoError(t, users.DeleteCascade(ctx, alice.ID))

	_, err := users.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	count := func(m any) int64 {
		var n int64
		require.NoError(t, db.Unscoped().Model(m).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&model.TransactionModel{}))
	assert.Equal(t, int64(1), count(&model.CategoryModel{}))
	assert.Equal(t, int64(0), count(&model.RefreshTokenModel{}))

	result, err := logs.FindByFilter(ctx, adapter.ActionLogFilter{}, adapter.TransactionPagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Logs, 1)
	assert.Nil(t, result.Logs[0].UserID)

	assert.ErrorIs(t, users.DeleteCascade(ctx, alice.ID), domainerror.ErrUserNotFound)
}

func TestActionLogRepository_Filter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewActionLogRepository(db)
	alice := createUser(t, db, "alice@example.com")

	old := entity.NewUserActionLog(entity.ActionLoginFailed, nil, "old")
	old.Timestamp = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, entity.NewUserActionLog(entity.ActionLoginFailed, &alice.ID, "recent")))
	require.NoError(t, repo.Create(ctx, entity.NewUserActionLog(entity.ActionLoginSuccess, &alice.ID, "")))

	page := adapter.TransactionPagination{Page: 1, Limit: 10}
	failed := entity.ActionLoginFailed

	result, err := repo.FindByFilter(ctx, adapter.ActionLogFilter{Action: &failed}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, "recent", result.Logs[0].Details)

	since := time.Now().UTC().Add(-time.Hour)
	result, err = repo.FindByFilter(ctx, adapter.ActionLogFilter{Action: &failed, Since: &since}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = repo.FindByFilter(ctx, adapter.ActionLogFilter{UserID: &alice.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestTokenRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTokenRepository(db)
	alice := createUser(t, db, "alice@example.com")

	require.NoError(t, repo.SaveRefreshToken(ctx, "live", alice.ID, time.Now().Add(time.Hour)))
	require.NoError(t, repo.SaveRefreshToken(ctx, "stale", alice.ID, time.Now().Add(-time.Hour)))

	valid, err := repo.IsRefreshTokenValid(ctx, "live")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = repo.IsRefreshTokenValid(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = repo.IsRefreshTokenValid(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, repo.InvalidateAllUserRefreshTokens(ctx, alice.ID))
	valid, err = repo.IsRefreshTokenValid(ctx, "live")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRepositories_RejectRowsForDeletedUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	categories := NewCategoryRepository(db)
	transactions := NewTransactionRepository(db)

	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	require.NoError(t, categories.Create(ctx, food))

	gone := createUser(t, db, "gone@example.com")
	require.NoError(t, users.DeleteCascade(ctx, gone.ID))

	err := categories.Create(ctx, entity.NewCategory("Pets", entity.TransactionTypeExpenditure, gone.ID))
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	err = transactions.Create(ctx, entity.NewTransaction(gone.ID, food, day(2026, 3, 1), decimal.NewFromInt(5), "", nil))
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	var orphans int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Where("user_id = ?", gone.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestSchema_EnforcesReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")

	bogusType := entity.NewCategory("Loans", entity.TransactionType("transfer"), alice.ID)
	assert.Error(t, db.WithContext(ctx).Create(model.CategoryFromEntity(bogusType)).Error)

	bogusAction := entity.NewUserActionLog(entity.ActionName("password_reset"), &alice.ID, "")
	assert.Error(t, NewActionLogRepository(db).Create(ctx, bogusAction))

	logs := NewActionLogRepository(db)
	require.NoError(t, logs.Create(ctx, entity.NewUserActionLog(entity.ActionLoginSuccess, &alice.ID, "")))
	require.NoError(t, db.Where("id = ?", alice.ID).Delete(&model.UserModel{}).Error)

	var log model.UserActionLogModel
	require.NoError(t, db.First(&log).Error)
	assert.Nil(t, log.UserID, "deleting a user clears the audit reference")
}
