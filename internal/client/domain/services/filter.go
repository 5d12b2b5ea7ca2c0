package services

import (
	"strings"
	"time"

	"onlyraves/internal/client/domain/entities"
)

// FilterRaves сужает список событий по заданным критериям.
// Функция чистая: сетевых обращений нет, порядок выживших элементов
// совпадает с порядком во входном списке, входной срез не изменяется.
// Активные критерии комбинируются логическим И.
func FilterRaves(raves []entities.Rave, opts entities.FilterOptions) []entities.Rave {
	if opts.IsEmpty() {
		return raves
	}

	filtered := make([]entities.Rave, 0, len(raves))
	for _, rave := range raves {
		if matches(&rave, opts) {
			filtered = append(filtered, rave)
		}
	}
	return filtered
}

func matches(rave *entities.Rave, opts entities.FilterOptions) bool {
	// Жанр: точное совпадение по имени разрезолвленного жанра.
	// Событие без жанра не проходит непустой критерий.
	if opts.Genre != "" {
		if rave.Genre == nil || rave.Genre.Name != opts.Genre {
			return false
		}
	}

	// Город: поиск подстроки без учета регистра.
	if opts.City != "" {
		if rave.City == nil || !strings.Contains(strings.ToLower(*rave.City), strings.ToLower(opts.City)) {
			return false
		}
	}

	// Даты сравниваются как календарные, границы включительны.
	if opts.DateFrom != nil && calendarDate(rave.Date).Before(calendarDate(*opts.DateFrom)) {
		return false
	}
	if opts.DateTo != nil && calendarDate(rave.Date).After(calendarDate(*opts.DateTo)) {
		return false
	}

	// Диапазон цены: событие без цены (бесплатное) не проходит никогда,
	// даже для диапазона, начинающегося с нуля.
	if opts.PriceRange != nil {
		if rave.TicketPrice == nil {
			return false
		}
		price := *rave.TicketPrice
		if price < opts.PriceRange.Min || price > opts.PriceRange.Max {
			return false
		}
	}

	return true
}

// calendarDate отбрасывает время суток, оставляя календарную дату в UTC.
func calendarDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
