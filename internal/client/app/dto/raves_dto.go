package dto

import (
	"strconv"
	"time"

	"onlyraves/internal/client/domain/entities"
)

// Метка цены для бесплатных событий. Отсутствие цены и нулевая
// цена различаются.
const freePriceLabel = "free"

// GenreResponse содержит данные жанра.
type GenreResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Hardness int    `json:"hardness"`
}

// RaveResponse содержит данные события каталога.
type RaveResponse struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Name        string           `json:"name"`
	Date        time.Time        `json:"date"`
	Description *string          `json:"description,omitempty"`
	TicketPrice *float64         `json:"ticket_price"`
	PriceLabel  string           `json:"price_label"`
	Street      *string          `json:"street,omitempty"`
	ZipCode     *string          `json:"zip_code,omitempty"`
	City        *string          `json:"city,omitempty"`
	Genre       *GenreResponse   `json:"genre,omitempty"`
	Promoter    *ProfileResponse `json:"promoter,omitempty"`
}

// CreateRaveRequest содержит данные для создания события.
type CreateRaveRequest struct {
	Name        string   `json:"name" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	GenreID     *string  `json:"genre_id,omitempty"`
	Description *string  `json:"description,omitempty"`
	TicketPrice *float64 `json:"ticket_price,omitempty"`
	Street      *string  `json:"street,omitempty"`
	ZipCode     *string  `json:"zip_code,omitempty"`
	City        *string  `json:"city,omitempty"`
}

// NewGenreResponse строит ответ из доменного жанра.
func NewGenreResponse(genre entities.Genre) GenreResponse {
	return GenreResponse{
		ID:       genre.ID,
		Name:     genre.Name,
		Hardness: genre.Hardness,
	}
}

// NewGenreResponses строит список ответов из доменных жанров.
func NewGenreResponses(genres []entities.Genre) []GenreResponse {
	responses := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		responses = append(responses, NewGenreResponse(genre))
	}
	return responses
}

// NewRaveResponse строит ответ из доменного события.
func NewRaveResponse(rave *entities.Rave) RaveResponse {
	resp := RaveResponse{
		ID:          rave.ID,
		OwnerID:     rave.OwnerID,
		Name:        rave.Name,
		Date:        rave.Date,
		Description: rave.Description,
		TicketPrice: rave.TicketPrice,
		PriceLabel:  priceLabel(rave.TicketPrice),
		Street:      rave.Street,
		ZipCode:     rave.ZipCode,
		City:        rave.City,
	}

	if rave.Genre != nil {
		genre := NewGenreResponse(*rave.Genre)
		resp.Genre = &genre
	}

	if rave.Promoter != nil {
		promoter := NewProfileResponse(rave.Promoter)
		resp.Promoter = &promoter
	}

	return resp
}

// NewRaveResponses строит список ответов из доменных событий.
func NewRaveResponses(raves []entities.Rave) []RaveResponse {
	responses := make([]RaveResponse, 0, len(raves))
	for i := range raves {
		responses = append(responses, NewRaveResponse(&raves[i]))
	}
	return responses
}

func priceLabel(price *float64) string {
	if price == nil {
		return freePriceLabel
	}
	return strconv.FormatFloat(round2(*price), 'f', 2, 64)
}
