// Package summary contains the monthly aggregate use case.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

// Clock returns the current time.
type Clock func() time.Time

// GetMonthlySummaryInput represents the input for the monthly summary.
// An empty Month selects the current month.
type GetMonthlySummaryInput struct {
	UserID uuid.UUID
	Type   entity.TransactionType
	Month  string
}

// GetMonthlySummaryOutput represents the output of the monthly summary.
type GetMonthlySummaryOutput struct {
	Summary     *entity.MonthlySummary
	PeriodLabel string
	Cached      bool
}

// GetMonthlySummaryUseCase aggregates one month of a user's transactions per category.
type GetMonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.SummaryCache
	now             Clock
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.SummaryCache,
	now Clock,
) *GetMonthlySummaryUseCase {
	if now == nil {
		now = time.Now
	}
	return &GetMonthlySummaryUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		now:             now,
	}
}

// Execute computes the summary.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	if !input.Type.IsValid() {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidSummaryType,
			"type must be 'income' or 'expenditure'",
			domainerror.ErrInvalidSummaryType,
		)
	}

	month := uc.now()
	if input.Month != "" {
		parsed, err := time.ParseInLocation(entity.MonthLayout, input.Month, time.UTC)
		if err != nil {
			return nil, domainerror.NewSummaryError(
				domainerror.ErrCodeInvalidSummaryMonth,
				"month must be in YYYY-MM format",
				domainerror.ErrInvalidSummaryMonth,
			)
		}
		month = parsed
	}
	start, end := entity.MonthBounds(month)
	label := start.Format(entity.MonthLayout)

	cached, version, err := uc.cache.Get(ctx, input.UserID, input.Type, start)
	cacheUsable := err == nil
	if err != nil {
		slog.WarnContext(ctx, "summary cache read failed", "user_id", input.UserID.String(), "error", err)
	}
	if cached != nil {
		return &GetMonthlySummaryOutput{Summary: cached, PeriodLabel: label, Cached: true}, nil
	}

	summaryType := input.Type
	transactions, err := uc.transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
		Type:      &summaryType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := Aggregate(input.Type, start, transactions)

	if cacheUsable {
		if err := uc.cache.Set(ctx, input.UserID, version, summary); err != nil {
			slog.WarnContext(ctx, "summary cache write failed", "user_id", input.UserID.String(), "error", err)
		}
	}

	return &GetMonthlySummaryOutput{Summary: summary, PeriodLabel: label}, nil
}

// Aggregate groups transactions by category and sums their signed amounts.
// Expenditure aggregates are reported as absolute values. Items are ordered
// by category name, ties broken by id.
func Aggregate(summaryType entity.TransactionType, month time.Time, transactions []*entity.TransactionWithCategory) *entity.MonthlySummary {
	byCategory := make(map[uuid.UUID]*entity.CategoryAmount)

	for _, twc := range transactions {
		if twc.Category == nil || twc.Category.Type != summaryType {
			continue
		}
		item, ok := byCategory[twc.Category.ID]
		if !ok {
			item = &entity.CategoryAmount{
				CategoryID:   twc.Category.ID,
				CategoryName: twc.Category.Name,
				Amount:       decimal.Zero,
			}
			byCategory[twc.Category.ID] = item
		}
		item.Amount = item.Amount.Add(twc.Transaction.Amount)
		item.TransactionCount++
	}

	items := make([]entity.CategoryAmount, 0, len(byCategory))
	total := decimal.Zero
	for _, item := range byCategory {
		item.Amount = summaryType.DisplayAmount(item.Amount)
		total = total.Add(item.Amount)
		items = append(items, *item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CategoryName != items[j].CategoryName {
			return items[i].CategoryName < items[j].CategoryName
		}
		return items[i].CategoryID.String() < items[j].CategoryID.String()
	})

	start, _ := entity.MonthBounds(month)
	return &entity.MonthlySummary{
		Type:  summaryType,
		Month: start,
		Items: items,
		Total: total,
	}
}
