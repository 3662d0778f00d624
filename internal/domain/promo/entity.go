// Package promo models promo codes gating free coaching sessions. The usage
// counter is a contended resource: validation here is advisory, the atomic
// consume lives in the store (a single conditional update).
package promo

import (
	"errors"
)

var (
	ErrInactive  = errors.New("promo code is inactive")
	ErrExhausted = errors.New("promo code has no uses remaining")
)

type PromoCode struct {
	code        string
	maxUses     int
	currentUses int
	active      bool
}

func NewPromoCode(code string, maxUses, currentUses int, active bool) (*PromoCode, error) {
	if code == "" {
		return nil, errors.New("promo code is required")
	}
	if maxUses < 0 || currentUses < 0 {
		return nil, errors.New("usage counters cannot be negative")
	}
	return &PromoCode{
		code:        code,
		maxUses:     maxUses,
		currentUses: currentUses,
		active:      active,
	}, nil
}

func (p *PromoCode) UsesRemaining() int {
	remaining := p.maxUses - p.currentUses
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ValidateUsage reports whether the code may gate a new free booking. This is
// the read-side check; the consuming write re-verifies the precondition.
func (p *PromoCode) ValidateUsage() error {
	if !p.active {
		return ErrInactive
	}
	if p.UsesRemaining() <= 0 {
		return ErrExhausted
	}
	return nil
}

func (p *PromoCode) Code() string     { return p.code }
func (p *PromoCode) MaxUses() int     { return p.maxUses }
func (p *PromoCode) CurrentUses() int { return p.currentUses }
func (p *PromoCode) Active() bool     { return p.active }
