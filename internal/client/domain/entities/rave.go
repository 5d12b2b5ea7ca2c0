package entities

import (
	"errors"
	"time"
)

// Ошибки домена рейвов.
var (
	ErrRaveNotFound  = errors.New("rave not found")
	ErrEmptyName     = errors.New("rave name cannot be empty")
	ErrNegativePrice = errors.New("ticket price cannot be negative")
	ErrNotRaveOwner  = errors.New("only the owner can delete a rave")
)

// Rave представляет событие каталога.
// TicketPrice == nil означает бесплатное событие; это не то же самое, что цена 0.
type Rave struct {
	ID          string
	OwnerID     string
	GenreID     *string
	Name        string
	Date        time.Time
	Description *string
	TicketPrice *float64
	Street      *string
	ZipCode     *string
	City        *string

	// Данные, полученные через join. Могут отсутствовать.
	Genre    *Genre
	Promoter *Profile
}

// Validate проверяет инварианты события.
func (r *Rave) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.TicketPrice != nil && *r.TicketPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}
