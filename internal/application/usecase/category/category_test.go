package category

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) FindVisible(_ context.Context, userID uuid.UUID, categoryType *entity.TransactionType) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		if c.IsDeleted() || !c.IsVisibleTo(userID) {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCategoryRepo) ExistsVisibleByName(_ context.Context, userID uuid.UUID, name string, categoryType entity.TransactionType, excludeID *uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.IsDeleted() || !c.IsVisibleTo(userID) || c.Type != categoryType {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.categories[id]
	if !ok {
		return domainerror.ErrCategoryNotFound
	}
	c.MarkDeleted(time.Now())
	return nil
}

type recordedAction struct {
	userID  *uuid.UUID
	action  entity.ActionName
	details string
}

type fakeRecorder struct {
	actions []recordedAction
}

func (r *fakeRecorder) Record(_ context.Context, userID *uuid.UUID, action entity.ActionName, details string) {
	r.actions = append(r.actions, recordedAction{userID: userID, action: action, details: details})
}

type countingCache struct {
	adapter.SummaryCache
	invalidations int
}

func (c *countingCache) InvalidateUser(context.Context, uuid.UUID) error {
	c.invalidations++
	return nil
}

func requireCategoryCode(t *testing.T, err error, code domainerror.CategoryErrorCode) {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
	assert.Equal(t, code, catErr.Code)
}

func TestCreateCategory(t *testing.T) {
	userID := uuid.New()
	food := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)

	t.Run("creates an owned category", func(t *testing.T) {
		repo := newFakeCategoryRepo(food)
		recorder := &fakeRecorder{}
		uc := NewCreateCategoryUseCase(repo, recorder)

		out, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: userID,
			Name:   "  Pets ",
			Type:   entity.TransactionTypeExpenditure,
		})
		require.NoError(t, err)

		assert.Equal(t, "Pets", out.Category.Name)
		assert.True(t, out.Category.IsOwnedBy(userID))
		assert.False(t, out.Category.IsDefault)
		require.Len(t, recorder.actions, 1)
		assert.Equal(t, entity.ActionCategoryAdded, recorder.actions[0].action)
		assert.Equal(t, "Pets", recorder.actions[0].details)
	})

	t.Run("rejects a name shadowing a default category", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo(food), &fakeRecorder{})

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: userID,
			Name:   "FOOD",
			Type:   entity.TransactionTypeExpenditure,
		})
		requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)
	})

	t.Run("allows the same name for the other type", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo(food), &fakeRecorder{})

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: userID,
			Name:   "Food",
			Type:   entity.TransactionTypeIncome,
		})
		assert.NoError(t, err)
	})

	t.Run("allows reusing a deleted name", func(t *testing.T) {
		old := entity.NewCategory("Hobby", entity.TransactionTypeExpenditure, userID)
		old.MarkDeleted(time.Now())
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo(old), &fakeRecorder{})

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: userID,
			Name:   "Hobby",
			Type:   entity.TransactionTypeExpenditure,
		})
		assert.NoError(t, err)
	})

	t.Run("validates input", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo(), &fakeRecorder{})

		_, err := uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "  ", Type: entity.TransactionTypeIncome})
		requireCategoryCode(t, err, domainerror.ErrCodeMissingCategoryFields)

		_, err = uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: strings.Repeat("x", MaxCategoryNameLength+1), Type: entity.TransactionTypeIncome})
		requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameTooLong)

		_, err = uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "Transfer", Type: "transfer"})
		requireCategoryCode(t, err, domainerror.ErrCodeInvalidCategoryType)
	})
}

func TestGetCategory_Access(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	custom := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, owner)
	shared := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	deleted := entity.NewCategory("Old", entity.TransactionTypeExpenditure, owner)
	deleted.MarkDeleted(time.Now())

	uc := NewGetCategoryUseCase(newFakeCategoryRepo(custom, shared, deleted))
	ctx := context.Background()

	got, err := uc.Execute(ctx, GetCategoryInput{UserID: owner, CategoryID: custom.ID})
	require.NoError(t, err)
	assert.Equal(t, custom.ID, got.ID)

	_, err = uc.Execute(ctx, GetCategoryInput{UserID: stranger, CategoryID: shared.ID})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, GetCategoryInput{UserID: stranger, CategoryID: custom.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeNotAuthorizedCategory)

	_, err = uc.Execute(ctx, GetCategoryInput{UserID: owner, CategoryID: deleted.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)

	_, err = uc.Execute(ctx, GetCategoryInput{UserID: owner, CategoryID: uuid.New()})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
}

func TestUpdateCategory(t *testing.T) {
	owner := uuid.New()

	t.Run("renames and invalidates cached summaries", func(t *testing.T) {
		custom := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, owner)
		repo := newFakeCategoryRepo(custom)
		cache := &countingCache{}
		recorder := &fakeRecorder{}
		uc := NewUpdateCategoryUseCase(repo, cache, recorder)

		out, err := uc.Execute(context.Background(), UpdateCategoryInput{UserID: owner, CategoryID: custom.ID, Name: "Animals"})
		require.NoError(t, err)

		assert.Equal(t, "Animals", out.Category.Name)
		assert.Equal(t, entity.TransactionTypeExpenditure, out.Category.Type)
		assert.Equal(t, 1, cache.invalidations)
		require.Len(t, recorder.actions, 1)
		assert.Equal(t, "Pets -> Animals", recorder.actions[0].details)
	})

	t.Run("keeping the same name is a no-op", func(t *testing.T) {
		custom := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, owner)
		recorder := &fakeRecorder{}
		uc := NewUpdateCategoryUseCase(newFakeCategoryRepo(custom), &countingCache{}, recorder)

		_, err := uc.Execute(context.Background(), UpdateCategoryInput{UserID: owner, CategoryID: custom.ID, Name: "Pets"})
		require.NoError(t, err)
		assert.Empty(t, recorder.actions)
	})

	t.Run("rejects defaults", func(t *testing.T) {
		shared := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
		uc := NewUpdateCategoryUseCase(newFakeCategoryRepo(shared), &countingCache{}, &fakeRecorder{})

		_, err := uc.Execute(context.Background(), UpdateCategoryInput{UserID: owner, CategoryID: shared.ID, Name: "Groceries"})
		requireCategoryCode(t, err, domainerror.ErrCodeDefaultCategoryReadOnly)
	})

	t.Run("rejects a clashing name", func(t *testing.T) {
		pets := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, owner)
		toys := entity.NewCategory("Toys", entity.TransactionTypeExpenditure, owner)
		uc := NewUpdateCategoryUseCase(newFakeCategoryRepo(pets, toys), &countingCache{}, &fakeRecorder{})

		_, err := uc.Execute(context.Background(), UpdateCategoryInput{UserID: owner, CategoryID: toys.ID, Name: "pets"})
		requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)
	})
}

func TestDeleteCategory(t *testing.T) {
	owner := uuid.New()
	custom := entity.NewCategory("Pets", entity.TransactionTypeExpenditure, owner)
	shared := entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure)
	repo := newFakeCategoryRepo(custom, shared)
	recorder := &fakeRecorder{}
	uc := NewDeleteCategoryUseCase(repo, recorder)
	ctx := context.Background()

	err := uc.Execute(ctx, DeleteCategoryInput{UserID: uuid.New(), CategoryID: custom.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeNotAuthorizedCategory)

	err = uc.Execute(ctx, DeleteCategoryInput{UserID: owner, CategoryID: shared.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeDefaultCategoryReadOnly)

	require.NoError(t, uc.Execute(ctx, DeleteCategoryInput{UserID: owner, CategoryID: custom.ID}))
	assert.True(t, repo.categories[custom.ID].IsDeleted())
	require.Len(t, recorder.actions, 1)
	assert.Equal(t, entity.ActionCategoryDeleted, recorder.actions[0].action)

	err = uc.Execute(ctx, DeleteCategoryInput{UserID: owner, CategoryID: custom.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
}

func TestListCategories(t *testing.T) {
	owner := uuid.New()
	repo := newFakeCategoryRepo(
		entity.NewDefaultCategory("Salary", entity.TransactionTypeIncome),
		entity.NewDefaultCategory("Food", entity.TransactionTypeExpenditure),
		entity.NewCategory("Pets", entity.TransactionTypeExpenditure, owner),
		entity.NewCategory("Secret", entity.TransactionTypeExpenditure, uuid.New()),
	)
	uc := NewListCategoriesUseCase(repo)

	out, err := uc.Execute(context.Background(), ListCategoriesInput{UserID: owner})
	require.NoError(t, err)
	assert.Len(t, out.Categories, 3)

	expenditure := entity.TransactionTypeExpenditure
	out, err = uc.Execute(context.Background(), ListCategoriesInput{UserID: owner, Type: &expenditure})
	require.NoError(t, err)
	require.Len(t, out.Categories, 2)
	assert.Equal(t, "Food", out.Categories[0].Name)

	bogus := entity.TransactionType("transfer")
	_, err = uc.Execute(context.Background(), ListCategoriesInput{UserID: owner, Type: &bogus})
	requireCategoryCode(t, err, domainerror.ErrCodeInvalidCategoryType)
}
