package entities

import "errors"

// Ошибки домена профиля.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyUserID     = errors.New("user ID cannot be empty")
)

// Profile представляет расширенные данные пользователя, привязанные к Identity.
// Все поля, кроме UserID, опциональны.
type Profile struct {
	UserID    string
	FirstName *string
	LastName  *string
	Username  *string
	Age       *int
}

// Clone возвращает глубокую копию профиля.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	clone := Profile{UserID: p.UserID}
	if p.FirstName != nil {
		v := *p.FirstName
		clone.FirstName = &v
	}
	if p.LastName != nil {
		v := *p.LastName
		clone.LastName = &v
	}
	if p.Username != nil {
		v := *p.Username
		clone.Username = &v
	}
	if p.Age != nil {
		v := *p.Age
		clone.Age = &v
	}
	return &clone
}
