package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
)

func TestReceiptValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid header", func(t *testing.T) {
		assert.NoError(t, New("R-001", testDate()).Validate(ctx))
	})

	t.Run("blank number", func(t *testing.T) {
		err := New("   ", testDate()).Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("number over limit", func(t *testing.T) {
		long := make([]byte, MaxNumberLength+1)
		for i := range long {
			long[i] = 'A'
		}
		err := New(string(long), testDate()).Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("zero date", func(t *testing.T) {
		rec := New("R-002", testDate())
		rec.Date = time.Time{}
		err := rec.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"R-001", "R-001"},
		{"  r-001  ", "R-001"},
		{"\tПрд-07\n", "ПРД-07"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeNumber(tc.in))
	}
}

func TestLineValidator(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown catalog references", func(t *testing.T) {
		env := newTestEnv()
		line := NewLine(id.New(), id.New(), id.New(), types.MustQuantity("1"))

		err := env.svc.lines.Validate(ctx, line, nil)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Len(t, appErr.Errors(), 2)
	})

	t.Run("archived references on a new line", func(t *testing.T) {
		env := newTestEnv()
		resID := env.resources.add("Old stock", entity.StatusArchived)
		unitID := env.units.add("pcs", entity.StatusArchived)
		line := NewLine(id.New(), resID, unitID, types.MustQuantity("1"))

		err := env.svc.lines.Validate(ctx, line, nil)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Len(t, appErr.Errors(), 2)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		env := newTestEnv()
		resID := env.resources.add("Cement", entity.StatusActive)
		unitID := env.units.add("kg", entity.StatusActive)

		for _, qty := range []types.Quantity{types.ZeroQuantity(), types.MustQuantity("-1")} {
			line := NewLine(id.New(), resID, unitID, qty)
			err := env.svc.lines.Validate(ctx, line, nil)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		}
	})

	t.Run("unchanged archived pair stays legal", func(t *testing.T) {
		env := newTestEnv()
		resID := env.resources.add("Cement", entity.StatusArchived)
		unitID := env.units.add("kg", entity.StatusArchived)

		old := NewLine(id.New(), resID, unitID, types.MustQuantity("10"))
		updated := old
		updated.Quantity = types.MustQuantity("12")

		assert.NoError(t, env.svc.lines.Validate(ctx, updated, &old))
	})

	t.Run("switching to an archived pair is rejected", func(t *testing.T) {
		env := newTestEnv()
		resID := env.resources.add("Cement", entity.StatusActive)
		unitID := env.units.add("kg", entity.StatusActive)
		archivedUnit := env.units.add("bag", entity.StatusArchived)

		old := NewLine(id.New(), resID, unitID, types.MustQuantity("10"))
		updated := old
		updated.UnitID = archivedUnit

		err := env.svc.lines.Validate(ctx, updated, &old)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("same pair shrink requires stock for the difference", func(t *testing.T) {
		env := newTestEnv()
		resID := env.resources.add("Cement", entity.StatusActive)
		unitID := env.units.add("kg", entity.StatusActive)
		require.NoError(t, env.balanceSvc.Increase(ctx, resID, unitID, types.MustQuantity("3")))

		old := NewLine(id.New(), resID, unitID, types.MustQuantity("10"))
		updated := old
		updated.Quantity = types.MustQuantity("4")

		// Needs to release 6, only 3 on hand.
		err := env.svc.lines.Validate(ctx, updated, &old)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))

		// Releasing 2 is covered.
		updated.Quantity = types.MustQuantity("8")
		assert.NoError(t, env.svc.lines.Validate(ctx, updated, &old))
	})

	t.Run("pair switch requires the whole old quantity on hand", func(t *testing.T) {
		env := newTestEnv()
		resID := env.resources.add("Cement", entity.StatusActive)
		unitID := env.units.add("kg", entity.StatusActive)
		otherUnit := env.units.add("t", entity.StatusActive)
		require.NoError(t, env.balanceSvc.Increase(ctx, resID, unitID, types.MustQuantity("5")))

		old := NewLine(id.New(), resID, unitID, types.MustQuantity("10"))
		updated := old
		updated.UnitID = otherUnit

		err := env.svc.lines.Validate(ctx, updated, &old)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestMatchLine(t *testing.T) {
	resA, resB := id.New(), id.New()
	unitX, unitY := id.New(), id.New()

	oldLines := []Line{
		NewLine(id.New(), resA, unitX, types.MustQuantity("1")),
		NewLine(id.New(), resB, unitY, types.MustQuantity("2")),
	}

	t.Run("by line id", func(t *testing.T) {
		in := oldLines[1]
		in.Quantity = types.MustQuantity("9")
		got := MatchLine(oldLines, in)
		require.NotNil(t, got)
		assert.Equal(t, oldLines[1].ID, got.ID)
	})

	t.Run("by pair when id is absent", func(t *testing.T) {
		in := Line{ResourceID: resA, UnitID: unitX, Quantity: types.MustQuantity("3")}
		got := MatchLine(oldLines, in)
		require.NotNil(t, got)
		assert.Equal(t, oldLines[0].ID, got.ID)
	})

	t.Run("id wins over an earlier pair match", func(t *testing.T) {
		dup := []Line{
			NewLine(id.New(), resA, unitX, types.MustQuantity("5")),
			NewLine(id.New(), resA, unitX, types.MustQuantity("7")),
		}
		in := dup[1]
		in.Quantity = types.MustQuantity("3")
		got := MatchLine(dup, in)
		require.NotNil(t, got)
		assert.Equal(t, dup[1].ID, got.ID)
		assert.True(t, got.Quantity.Equal(types.MustQuantity("7")))
	})

	t.Run("no predecessor", func(t *testing.T) {
		in := NewLine(id.New(), resB, unitX, types.MustQuantity("3"))
		assert.Nil(t, MatchLine(oldLines, in))
	})
}
