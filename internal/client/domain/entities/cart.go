package entities

import "errors"

// Ошибки домена корзины.
var (
	// ErrDuplicateCartLine возвращается при попытке повторно добавить рейв,
	// который уже лежит в корзине пользователя.
	ErrDuplicateCartLine = errors.New("rave is already in the cart")
)

// CartLine представляет связь пользователь-рейв в корзине.
// Инвариант хранилища: не более одной строки на пару (UserID, RaveID).
type CartLine struct {
	ID     string
	UserID string
	RaveID string

	// Rave резолвится через join; nil означает висящую ссылку,
	// такая строка отбрасывается при выдаче.
	Rave *Rave
}
