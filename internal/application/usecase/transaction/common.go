// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

const (
	// MaxDetailsLength is the maximum allowed length for transaction details.
	MaxDetailsLength = 500

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TransactionOutput represents a single transaction in the output.
// Amount is the display value; SignedAmount is the stored one.
type TransactionOutput struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Date           time.Time
	Amount         decimal.Decimal
	SignedAmount   decimal.Decimal
	Type           entity.TransactionType
	Category       *CategoryOutput
	Details        string
	AttachmentName string
	HasAttachment  bool
	Location       *entity.GeoLocation
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	Type      entity.TransactionType
	IsDefault bool
	IsDeleted bool
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

func toOutput(twc *entity.TransactionWithCategory) *TransactionOutput {
	txn := twc.Transaction
	out := &TransactionOutput{
		ID:             txn.ID,
		UserID:         txn.UserID,
		Date:           txn.Date,
		Amount:         twc.DisplayAmount(),
		SignedAmount:   txn.Amount,
		Details:        txn.Details,
		AttachmentName: txn.AttachmentName,
		HasAttachment:  txn.HasAttachment(),
		Location:       txn.Location,
		CreatedAt:      txn.CreatedAt,
		ModifiedAt:     txn.ModifiedAt,
	}

	if cat := twc.Category; cat != nil {
		out.Type = cat.Type
		out.Category = &CategoryOutput{
			ID:        cat.ID,
			Name:      cat.Name,
			Type:      cat.Type,
			IsDefault: cat.IsDefault,
			IsDeleted: cat.IsDeleted(),
		}
	}

	return out
}

// findOwned loads a transaction and checks it belongs to the actor.
func findOwned(ctx context.Context, repo adapter.TransactionRepository, userID, transactionID uuid.UUID) (*entity.TransactionWithCategory, error) {
	twc, err := repo.FindByIDWithCategory(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if !twc.Transaction.IsOwnedBy(userID) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to access this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	return twc, nil
}

// resolveCategory loads a category that may be assigned by the actor.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if !category.IsVisibleTo(userID) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}

	if category.IsDeleted() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryDeleted,
			"category has been deleted",
			domainerror.ErrCategoryDeleted,
		)
	}

	return category, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateDetails(details string) error {
	if len([]rune(details)) > MaxDetailsLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDetailsTooLong,
			fmt.Sprintf("details must not exceed %d characters", MaxDetailsLength),
			domainerror.ErrDetailsTooLong,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

// buildLocation validates optional coordinates. Both or neither must be set.
func buildLocation(lat, lng *float64) (*entity.GeoLocation, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}

	invalid := domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidGeoLocation,
		"latitude must be within [-90, 90] and longitude within [-180, 180], and both must be given",
		domainerror.ErrInvalidGeoLocation,
	)
	if lat == nil || lng == nil {
		return nil, invalid
	}

	loc := &entity.GeoLocation{Lat: *lat, Lng: *lng}
	if !loc.IsValid() {
		return nil, invalid
	}
	return loc, nil
}

// ParseMonth parses a YYYY-MM month into its first instant in UTC.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.ParseInLocation(entity.MonthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}
	return t, nil
}

// invalidateSummaries drops cached summaries after a mutation.
func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate summary cache", "user_id", userID.String(), "error", err)
	}
}

func normalizePagination(page, limit int) adapter.TransactionPagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return adapter.TransactionPagination{Page: page, Limit: limit}
}
