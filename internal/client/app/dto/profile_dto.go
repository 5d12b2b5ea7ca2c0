package dto

import (
	"onlyraves/internal/client/domain/entities"
)

// ProfileResponse содержит данные профиля пользователя.
type ProfileResponse struct {
	UserID    string  `json:"user_id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

// UpdateProfileRequest содержит данные для сохранения профиля.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,gte=18"`
}

// NewProfileResponse строит ответ из доменного профиля.
func NewProfileResponse(profile *entities.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  profile.Username,
		Age:       profile.Age,
	}
}

// ToEntity преобразует запрос в доменный профиль с указанным ключом.
func (r *UpdateProfileRequest) ToEntity(userID string) *entities.Profile {
	return &entities.Profile{
		UserID:    userID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
		Age:       r.Age,
	}
}
