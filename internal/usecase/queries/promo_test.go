//go:build unit

package queries_test

import (
	"context"
	"testing"

	"coach-booking-api/internal/domain/promo"
	"coach-booking-api/internal/infra"
	"coach-booking-api/internal/pkg/errs"
	"coach-booking-api/internal/usecase/queries"
	queriesmock "coach-booking-api/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPromoQueriesValidate(t *testing.T) {
	newCode := func(maxUses, currentUses int, active bool) *promo.PromoCode {
		p, err := promo.NewPromoCode("WELCOME25", maxUses, currentUses, active)
		require.NoError(t, err)
		return p
	}

	type testCase struct {
		name     string
		store    func(m *queriesmock.MockPromoReadStore)
		wantView *queries.PromoView
		wantErr  bool
	}

	cases := []testCase{
		{
			name: "usable code validates with the remaining count",
			store: func(m *queriesmock.MockPromoReadStore) {
				m.EXPECT().FindByCode(gomock.Any(), "WELCOME25").Return(newCode(100, 40, true), nil)
			},
			wantView: &queries.PromoView{Code: "WELCOME25", Valid: true, UsesRemaining: 60},
		},
		{
			name: "inactive code is invalid with a reason",
			store: func(m *queriesmock.MockPromoReadStore) {
				m.EXPECT().FindByCode(gomock.Any(), "WELCOME25").Return(newCode(100, 40, false), nil)
			},
			wantView: &queries.PromoView{Code: "WELCOME25", Valid: false, UsesRemaining: 60, Reason: "promo code is inactive"},
		},
		{
			name: "exhausted code is invalid with a reason",
			store: func(m *queriesmock.MockPromoReadStore) {
				m.EXPECT().FindByCode(gomock.Any(), "WELCOME25").Return(newCode(100, 100, true), nil)
			},
			wantView: &queries.PromoView{Code: "WELCOME25", Valid: false, UsesRemaining: 0, Reason: "promo code has no uses remaining"},
		},
		{
			name: "unknown code is invalid, not an error",
			store: func(m *queriesmock.MockPromoReadStore) {
				m.EXPECT().FindByCode(gomock.Any(), "WELCOME25").
					Return(nil, infra.WrapRepoErr("no rows", errs.New("no rows"), infra.KindNotFound))
			},
			wantView: &queries.PromoView{Code: "WELCOME25", Valid: false, Reason: "not found"},
		},
		{
			name: "store failure propagates",
			store: func(m *queriesmock.MockPromoReadStore) {
				m.EXPECT().FindByCode(gomock.Any(), "WELCOME25").
					Return(nil, infra.WrapRepoErr("db down", errs.New("db down"), infra.KindDBFailure))
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockPromoReadStore(ctrl)
			tc.store(store)

			view, err := queries.NewPromoQueries(store).Validate(context.Background(), "WELCOME25")

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantView, view)
		})
	}
}
