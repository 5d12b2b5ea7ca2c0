// Package services определяет интерфейсы вспомогательных сервисов провайдера.
package services

import "context"

// PasswordService определяет интерфейс для операций с паролями.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, hash string) (bool, error)
}
