package provider

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domain "onlyraves/internal/client/domain/services"
	svc "onlyraves/internal/client/ports/services"
)

const (
	errGeneratingHash = "generating password hash"
	errComparingHash  = "comparing password with hash"
)

// ServicePassword реализует интерфейс PasswordService поверх bcrypt.
type ServicePassword struct {
	cost int
}

// NewBcrypt создает сервис паролей с указанной стоимостью хэширования.
// Стоимость ниже bcrypt.MinCost заменяется стоимостью по умолчанию.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &ServicePassword{cost: cost}
}

// Hash хэширует пароль. Пароль короче domain.MinPasswordLength
// отклоняется до обращения к bcrypt; пустой пароль попадает под то же
// правило.
func (s *ServicePassword) Hash(_ context.Context, password string) (string, error) {
	if len(password) < domain.MinPasswordLength {
		return "", fmt.Errorf("password shorter than %d characters: %w",
			domain.MinPasswordLength, domain.ErrInvalidPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errGeneratingHash, domain.ErrHashingFailed)
	}

	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем. Несовпадение возвращается как
// отрицательный ответ, а не как ошибка.
func (s *ServicePassword) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, domain.ErrInvalidPassword
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errComparingHash, err)
	}
}
