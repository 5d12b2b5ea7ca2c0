// Package dto содержит объекты передачи данных HTTP слоя.
package dto

import (
	"onlyraves/internal/client/domain/services"
)

// SignUpRequest содержит данные для регистрации пользователя.
type SignUpRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,gte=18"`
}

// SignInRequest содержит данные для входа пользователя.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse содержит снимок состояния сессии.
type SessionResponse struct {
	State   string           `json:"state"`
	Loading bool             `json:"loading"`
	UserID  string           `json:"user_id,omitempty"`
	Email   string           `json:"email,omitempty"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}

// NewSessionResponse строит ответ из снимка состояния.
func NewSessionResponse(snapshot services.SessionSnapshot, loading bool) SessionResponse {
	resp := SessionResponse{
		State:   string(snapshot.State),
		Loading: loading,
	}

	if snapshot.Identity != nil {
		resp.UserID = snapshot.Identity.ID
		resp.Email = snapshot.Identity.Email
	}

	if snapshot.Profile != nil {
		profile := NewProfileResponse(snapshot.Profile)
		resp.Profile = &profile
	}

	return resp
}
