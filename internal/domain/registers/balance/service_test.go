package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
)

// fakeRepo is an in-memory balance.Repository.
type fakeRepo struct {
	rows map[id.ID]entity.Balance
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[id.ID]entity.Balance)}
}

func (f *fakeRepo) find(resourceID, unitID id.ID) (entity.Balance, bool) {
	for _, b := range f.rows {
		if b.ResourceID == resourceID && b.UnitID == unitID {
			return b, true
		}
	}
	return entity.Balance{}, false
}

func (f *fakeRepo) Get(_ context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error) {
	b, ok := f.find(resourceID, unitID)
	return b, ok, nil
}

func (f *fakeRepo) GetForUpdate(ctx context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error) {
	return f.Get(ctx, resourceID, unitID)
}

func (f *fakeRepo) Insert(_ context.Context, bal entity.Balance) error {
	f.rows[bal.ID] = bal
	return nil
}

func (f *fakeRepo) SetQuantity(_ context.Context, balanceID id.ID, qty types.Quantity) error {
	b := f.rows[balanceID]
	b.Quantity = qty
	f.rows[balanceID] = b
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, balanceID id.ID) error {
	delete(f.rows, balanceID)
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]entity.Balance, error) {
	result := make([]entity.Balance, 0, len(f.rows))
	for _, b := range f.rows {
		result = append(result, b)
	}
	return result, nil
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	resID, unitID := id.New(), id.New()

	t.Run("non-positive quantity is trivially available", func(t *testing.T) {
		ok, err := svc.CheckAvailability(ctx, resID, unitID, types.ZeroQuantity())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.CheckAvailability(ctx, resID, unitID, types.MustQuantity("-1"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("absent row reads as zero stock", func(t *testing.T) {
		ok, err := svc.CheckAvailability(ctx, resID, unitID, types.MustQuantity("1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("exact quantity is available", func(t *testing.T) {
		require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("5")))

		ok, err := svc.CheckAvailability(ctx, resID, unitID, types.MustQuantity("5"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.CheckAvailability(ctx, resID, unitID, types.MustQuantity("5.001"))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestIncrease(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	resID, unitID := id.New(), id.New()

	require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("2.5")))
	require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("0.5")))

	qty, err := svc.Get(ctx, resID, unitID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(types.MustQuantity("3")))

	// One row per pair, not one per increase.
	assert.Len(t, repo.rows, 1)

	t.Run("non-positive increase is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Increase(ctx, resID, unitID, types.ZeroQuantity()))
		qty, err := svc.Get(ctx, resID, unitID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(types.MustQuantity("3")))
	})

	t.Run("separate pairs get separate rows", func(t *testing.T) {
		otherUnit := id.New()
		require.NoError(t, svc.Increase(ctx, resID, otherUnit, types.MustQuantity("1")))
		assert.Len(t, repo.rows, 2)
	})
}

func TestDecrease(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient stock returns typed error", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		resID, unitID := id.New(), id.New()

		require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("3")))

		err := svc.Decrease(ctx, resID, unitID, types.MustQuantity("4"))
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))

		// Balance untouched.
		qty, getErr := svc.Get(ctx, resID, unitID)
		require.NoError(t, getErr)
		assert.True(t, qty.Equal(types.MustQuantity("3")))
	})

	t.Run("decrease from absent row is insufficient", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		err := svc.Decrease(ctx, id.New(), id.New(), types.MustQuantity("1"))
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
	})

	t.Run("partial decrease keeps the row", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		resID, unitID := id.New(), id.New()

		require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("10")))
		require.NoError(t, svc.Decrease(ctx, resID, unitID, types.MustQuantity("4")))

		qty, err := svc.Get(ctx, resID, unitID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(types.MustQuantity("6")))
		assert.Len(t, repo.rows, 1)
	})

	t.Run("decrease to exactly zero removes the row", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		resID, unitID := id.New(), id.New()

		require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("7")))
		require.NoError(t, svc.Decrease(ctx, resID, unitID, types.MustQuantity("7")))

		assert.Len(t, repo.rows, 0)

		// Absent row reads as zero.
		qty, err := svc.Get(ctx, resID, unitID)
		require.NoError(t, err)
		assert.True(t, qty.IsZero())
	})

	t.Run("non-positive decrease is a no-op", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		resID, unitID := id.New(), id.New()

		require.NoError(t, svc.Increase(ctx, resID, unitID, types.MustQuantity("1")))
		require.NoError(t, svc.Decrease(ctx, resID, unitID, types.ZeroQuantity()))

		qty, err := svc.Get(ctx, resID, unitID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(types.MustQuantity("1")))
	})
}
