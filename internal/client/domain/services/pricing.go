package services

import "onlyraves/internal/client/domain/entities"

// ServiceFeeRate - фиксированная ставка сервисного сбора поверх стоимости билетов.
const ServiceFeeRate = 0.10

// CartTotals содержит агрегированную стоимость корзины.
// Значения хранятся с полной точностью float64; округление до двух знаков
// выполняется только на уровне представления.
type CartTotals struct {
	Subtotal float64
	Fee      float64
	Total    float64
}

// Totals вычисляет стоимость корзины по закону:
// subtotal = сумма цен, fee = subtotal * 0.10, total = subtotal + fee.
// События без цены (бесплатные) вносят 0.
func Totals(items []entities.Rave) CartTotals {
	var subtotal float64
	for _, item := range items {
		if item.TicketPrice != nil {
			subtotal += *item.TicketPrice
		}
	}

	fee := subtotal * ServiceFeeRate
	return CartTotals{
		Subtotal: subtotal,
		Fee:      fee,
		Total:    subtotal + fee,
	}
}
