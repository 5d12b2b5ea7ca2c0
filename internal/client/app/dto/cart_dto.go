package dto

import (
	"math"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
)

// AddCartLineRequest содержит данные для добавления события в корзину.
type AddCartLineRequest struct {
	RaveID string `json:"rave_id" validate:"required"`
}

// CartResponse содержит содержимое корзины и агрегированную стоимость.
// Денежные поля округлены до двух знаков только на границе ответа.
type CartResponse struct {
	Items    []RaveResponse `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Fee      float64        `json:"fee"`
	Total    float64        `json:"total"`
}

// CheckoutResponse содержит результат оформления заказа.
type CheckoutResponse struct {
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

// NewCheckoutResponse строит ответ оформления заказа.
func NewCheckoutResponse(status string, totals services.CartTotals) CheckoutResponse {
	return CheckoutResponse{
		Status: status,
		Total:  round2(totals.Total),
	}
}

// NewCartResponse строит ответ из событий корзины и агрегатов.
func NewCartResponse(items []entities.Rave, totals services.CartTotals) CartResponse {
	return CartResponse{
		Items:    NewRaveResponses(items),
		Subtotal: round2(totals.Subtotal),
		Fee:      round2(totals.Fee),
		Total:    round2(totals.Total),
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
