package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/ports/api"
	"onlyraves/pkg/logger"
)

// EditorState описывает состояние буфера редактирования профиля.
type EditorState string

// Состояния редактора. Явный вариант вместо набора булевых флагов:
// у путей отмены и неудачного сохранения всегда есть однозначная цель восстановления.
const (
	// EditorViewing - буфера нет, отображается зафиксированный профиль.
	EditorViewing EditorState = "viewing"
	// EditorEditing - буфер открыт; зафиксированный профиль хранится как цель отката.
	EditorEditing EditorState = "editing"
	// EditorSaving - буфер отправлен в хранилище; новые правки не принимаются.
	EditorSaving EditorState = "saving"
)

// Ошибки редактора профиля.
var (
	ErrEditorNotEditing  = errors.New("editor is not in editing state")
	ErrEditorBusy        = errors.New("save is already in progress")
	ErrEditorNoCommitted = errors.New("no committed profile to edit")
)

const (
	msgEditBegun     = "profile edit begun"
	msgBufferUpdated = "profile edit buffer updated"
	msgSavingBuffer  = "saving profile edit buffer"
	msgBufferSaved   = "profile edit buffer committed"
	msgSaveFailed    = "profile save failed, buffer retained"
	msgEditCancelled = "profile edit cancelled, buffer restored from committed"

	errCtxSavingProfile = "saving profile"
)

// ProfileEditor поддерживает локальный буфер оптимистичного редактирования,
// засеянный из последнего зафиксированного профиля и сверяемый с хранилищем
// при сохранении.
type ProfileEditor struct {
	profiles api.ProfileUseCase

	mu        sync.Mutex
	state     EditorState
	committed *entities.Profile
	buffer    *entities.Profile
}

// NewProfileEditor создает редактор поверх зафиксированного профиля.
func NewProfileEditor(profiles api.ProfileUseCase, committed *entities.Profile) *ProfileEditor {
	return &ProfileEditor{
		profiles:  profiles,
		state:     EditorViewing,
		committed: committed.Clone(),
	}
}

// State возвращает текущее состояние редактора.
func (e *ProfileEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Committed возвращает копию последнего зафиксированного профиля.
// Во время редактирования и сохранения именно он остается видимым снаружи.
func (e *ProfileEditor) Committed() *entities.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed.Clone()
}

// Buffer возвращает копию текущего буфера редактирования.
func (e *ProfileEditor) Buffer() *entities.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.Clone()
}

// Begin открывает буфер редактирования, засеянный из зафиксированного профиля.
func (e *ProfileEditor) Begin(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == EditorSaving {
		return ErrEditorBusy
	}
	if e.committed == nil {
		return ErrEditorNoCommitted
	}

	e.buffer = e.committed.Clone()
	e.state = EditorEditing

	logger.Log(ctx).Debug(ctx, msgEditBegun, zap.String("userID", e.committed.UserID))
	return nil
}

// Apply замещает содержимое буфера. Ключ UserID всегда наследуется от
// зафиксированного профиля и не может быть изменен правкой.
func (e *ProfileEditor) Apply(ctx context.Context, edit *entities.Profile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != EditorEditing {
		return ErrEditorNotEditing
	}

	buffer := edit.Clone()
	buffer.UserID = e.committed.UserID
	e.buffer = buffer

	logger.Log(ctx).Debug(ctx, msgBufferUpdated, zap.String("userID", buffer.UserID))
	return nil
}

// Save отправляет буфер целиком в хранилище. При успехе буфер становится
// новым зафиксированным профилем и редактирование завершается; при неудаче
// буфер сохраняется, чтобы пользователь не потерял ввод, а снаружи
// продолжает отображаться прежний зафиксированный профиль.
func (e *ProfileEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.state != EditorEditing {
		e.mu.Unlock()
		return ErrEditorNotEditing
	}
	e.state = EditorSaving
	buffer := e.buffer.Clone()
	e.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("userID", buffer.UserID))
	log.Debug(ctx, msgSavingBuffer)

	updated, err := e.profiles.Update(ctx, buffer)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.state = EditorEditing
		log.Warn(ctx, msgSaveFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSavingProfile, err)
	}

	e.committed = updated.Clone()
	e.buffer = nil
	e.state = EditorViewing

	log.Info(ctx, msgBufferSaved)
	return nil
}

// Cancel отбрасывает буфер и восстанавливает его источник - последний
// зафиксированный профиль, а не пустое значение.
func (e *ProfileEditor) Cancel(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != EditorEditing {
		return ErrEditorNotEditing
	}

	e.buffer = nil
	e.state = EditorViewing

	logger.Log(ctx).Debug(ctx, msgEditCancelled, zap.String("userID", e.committed.UserID))
	return nil
}
