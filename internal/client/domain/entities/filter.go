package entities

import "time"

// PriceRange задает включительные границы цены билета.
type PriceRange struct {
	Min float64
	Max float64
}

// FilterOptions описывает критерии фильтрации каталога.
// Все поля опциональны и комбинируются логическим И.
// Пустая строка для Genre и City означает отсутствие критерия.
type FilterOptions struct {
	Genre      string
	City       string
	DateFrom   *time.Time
	DateTo     *time.Time
	PriceRange *PriceRange
}

// IsEmpty возвращает true, если ни один критерий не задан.
func (f FilterOptions) IsEmpty() bool {
	return f.Genre == "" && f.City == "" && f.DateFrom == nil && f.DateTo == nil && f.PriceRange == nil
}
