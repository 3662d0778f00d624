//go:build unit

package promo_test

import (
	"testing"

	"coach-booking-api/internal/domain/promo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromoCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p, err := promo.NewPromoCode("WELCOME25", 100, 40, true)

		require.NoError(t, err)
		assert.Equal(t, "WELCOME25", p.Code())
		assert.Equal(t, 60, p.UsesRemaining())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := promo.NewPromoCode("", 100, 0, true)
		assert.Error(t, err)
	})

	t.Run("rejects negative counters", func(t *testing.T) {
		_, err := promo.NewPromoCode("WELCOME25", -1, 0, true)
		assert.Error(t, err)
	})
}

func TestValidateUsage(t *testing.T) {
	type testCase struct {
		name        string
		maxUses     int
		currentUses int
		active      bool
		errIs       error
	}

	cases := []testCase{
		{name: "usable code", maxUses: 100, currentUses: 40, active: true, errIs: nil},
		{name: "last use still valid", maxUses: 100, currentUses: 99, active: true, errIs: nil},
		{name: "inactive code", maxUses: 100, currentUses: 40, active: false, errIs: promo.ErrInactive},
		{name: "exhausted code", maxUses: 100, currentUses: 100, active: true, errIs: promo.ErrExhausted},
		{name: "over-consumed code", maxUses: 100, currentUses: 120, active: true, errIs: promo.ErrExhausted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := promo.NewPromoCode("WELCOME25", tc.maxUses, tc.currentUses, tc.active)
			require.NoError(t, err)

			if tc.errIs == nil {
				assert.NoError(t, p.ValidateUsage())
				return
			}
			assert.ErrorIs(t, p.ValidateUsage(), tc.errIs)
		})
	}
}

func TestUsesRemainingClampsAtZero(t *testing.T) {
	p, err := promo.NewPromoCode("WELCOME25", 100, 120, true)
	require.NoError(t, err)

	assert.Equal(t, 0, p.UsesRemaining())
}
