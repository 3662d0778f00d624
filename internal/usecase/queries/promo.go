package queries

import (
	"context"

	"coach-booking-api/internal/domain/promo"
	"coach-booking-api/internal/infra"
)

type PromoView struct {
	Code          string `json:"code"`
	Valid         bool   `json:"valid"`
	UsesRemaining int    `json:"uses_remaining"`
	Reason        string `json:"reason,omitempty"`
}

type PromoReadStore interface {
	FindByCode(ctx context.Context, code string) (*promo.PromoCode, error)
}

type PromoQueries interface {
	// Validate reports whether a code could gate a free booking right now.
	// Advisory only: the booking saga re-checks and consumes atomically.
	Validate(ctx context.Context, code string) (*PromoView, error)
}

type promoQueriesImpl struct {
	promoReads PromoReadStore
}

func NewPromoQueries(promoReads PromoReadStore) PromoQueries {
	return &promoQueriesImpl{promoReads: promoReads}
}

func (q *promoQueriesImpl) Validate(ctx context.Context, code string) (*PromoView, error) {
	p, err := q.promoReads.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &PromoView{Code: code, Valid: false, Reason: "not found"}, nil
		}
		return nil, err
	}
	view := &PromoView{Code: p.Code(), UsesRemaining: p.UsesRemaining()}
	if err := p.ValidateUsage(); err != nil {
		view.Reason = err.Error()
		return view, nil
	}
	view.Valid = true
	return view, nil
}
