package adapter

import (
	"context"

	checkoutapp "github.com/sparxparts/storefront/internal/checkout/app"
	promoapp "github.com/sparxparts/storefront/internal/promo/app"
)

type PromoServiceGuard struct {
	svc *promoapp.Service
}

func NewPromoServiceGuard(svc *promoapp.Service) *PromoServiceGuard {
	return &PromoServiceGuard{svc: svc}
}

func (g *PromoServiceGuard) Revalidate(ctx context.Context) (checkoutapp.PromoStatus, error) {
	st, err := g.svc.Revalidate(ctx)
	if err != nil {
		return checkoutapp.PromoStatus{}, err
	}

	return checkoutapp.PromoStatus{
		State:  string(st.State),
		Code:   st.Code,
		Reason: st.Reason,
	}, nil
}
