// Package app реализует прикладные сценарии клиента.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
	"onlyraves/internal/client/ports/api"
	"onlyraves/internal/client/ports/providers"
	"onlyraves/internal/client/ports/repositories"
	"onlyraves/pkg/logger"
)

const (
	methodStart   = "Start"
	methodSignIn  = "SignIn"
	methodSignUp  = "SignUp"
	methodSignOut = "SignOut"

	msgRequestingSnapshot    = "requesting initial session snapshot"
	msgSessionResolved       = "initial session snapshot resolved"
	msgStaleSnapshotSkipped  = "initial snapshot superseded by a notification"
	msgSessionNotification   = "session change notification received"
	msgNotificationAfterStop = "notification ignored after store close"
	msgFetchingProfile       = "fetching profile for identity"
	msgProfileApplied        = "profile applied"
	msgStaleProfileDiscarded = "stale profile fetch discarded"
	msgSignInDelegated       = "sign-in delegated to session provider"
	msgSigningUp             = "creating identity at session provider"
	msgIdentityCreated       = "identity created, creating profile"
	msgSignedUp              = "sign-up completed"
	msgSigningOut            = "sign-out requested"
	msgLocalStateCleared     = "local session state cleared"

	msgErrInitialSnapshot = "failed to resolve initial session snapshot"
	msgErrFetchProfile    = "failed to fetch profile"
	msgErrCreateIdentity  = "failed to create identity"
	msgErrCreateProfile   = "failed to create profile for new identity"
	msgErrRemoteSignOut   = "remote sign-out reported an error"

	errCtxInitialSnapshot  = "resolving initial session snapshot"
	errCtxCreatingIdentity = "creating identity"
	errCtxCreatingProfile  = "creating profile"
	errCtxSigningOut       = "signing out"
)

// ErrStoreAlreadyStarted возвращается при повторном вызове Start.
var ErrStoreAlreadyStarted = errors.New("session store already started")

// SessionStoreImpl реализует интерфейс api.SessionStore.
// Все переходы состояния выполняются под одним мьютексом; асинхронная
// загрузка профиля привязана к эпохе, зафиксированной в момент запуска,
// и отбрасывается, если эпоха успела измениться.
type SessionStoreImpl struct {
	provider providers.SessionProvider
	profiles repositories.ProfileRepository

	mu          sync.Mutex
	state       services.SessionState
	identity    *entities.Identity
	profile     *entities.Profile
	epoch       uint64
	started     bool
	closed      bool
	unsubscribe providers.UnsubscribeFunc

	// Контекст для фоновых загрузок профиля, переживающих вызов Start.
	baseCtx context.Context
}

// NewSessionStore создает новый экземпляр хранилища сессии.
func NewSessionStore(provider providers.SessionProvider, profiles repositories.ProfileRepository) api.SessionStore {
	return &SessionStoreImpl{
		provider: provider,
		profiles: profiles,
		state:    services.StateInitializing,
		baseCtx:  context.Background(),
	}
}

// Start запрашивает начальный снимок сессии ровно один раз и подписывается
// на уведомления провайдера. Подписка оформляется до разрешения снимка,
// чтобы не потерять уведомления, пришедшие во время инициализации.
func (s *SessionStoreImpl) Start(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodStart))

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrStoreAlreadyStarted
	}
	s.started = true
	s.baseCtx = context.WithoutCancel(ctx)
	s.unsubscribe = s.provider.OnSessionChange(s.handleNotification)
	startEpoch := s.epoch
	s.mu.Unlock()

	log.Debug(ctx, msgRequestingSnapshot)

	session, err := s.provider.GetCurrentSession(ctx)
	if err != nil {
		log.Error(ctx, msgErrInitialSnapshot, zap.Error(err))
		s.Close()
		return fmt.Errorf("%s: %w", errCtxInitialSnapshot, err)
	}

	s.mu.Lock()
	// Уведомление, пришедшее во время разрешения снимка, новее снимка.
	// Снимок применяется только если эпоха не успела сдвинуться.
	if s.epoch == startEpoch {
		s.applySessionLocked(session)
		s.mu.Unlock()
		log.Info(ctx, msgSessionResolved, zap.Bool("authenticated", session != nil))
		return nil
	}
	s.mu.Unlock()

	log.Info(ctx, msgStaleSnapshotSkipped)
	return nil
}

// Close отписывается от уведомлений провайдера. Уведомления и завершения
// загрузок профиля после Close игнорируются.
func (s *SessionStoreImpl) Close() {
	s.mu.Lock()
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// State возвращает текущее состояние машины состояний.
func (s *SessionStoreImpl) State() services.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading возвращает true, пока начальный снимок сессии не разрешен.
func (s *SessionStoreImpl) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == services.StateInitializing
}

// Snapshot возвращает согласованную копию Identity и Profile.
func (s *SessionStoreImpl) Snapshot() services.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := services.SessionSnapshot{State: s.state}
	if s.identity != nil {
		identity := *s.identity
		snapshot.Identity = &identity
	}
	snapshot.Profile = s.profile.Clone()
	return snapshot
}

// SignIn делегирует вход провайдеру. Локальное состояние не мутируется:
// успешный вход придет уведомлением и будет применен машиной состояний.
// Ошибка провайдера возвращается вызывающему без изменений.
func (s *SessionStoreImpl) SignIn(ctx context.Context, email, password string) error {
	log := logger.Log(ctx).With(zap.String("method", methodSignIn), zap.String("email", email))
	log.Debug(ctx, msgSignInDelegated)

	_, err := s.provider.SignInWithPassword(ctx, email, password)
	return err
}

// SignUp создает учетную запись у провайдера, затем профиль для нее.
// Если создание профиля не удалось, ошибка возвращается вызывающему,
// а учетная запись остается существовать без профиля.
func (s *SessionStoreImpl) SignUp(ctx context.Context, email, password string, profileSeed *entities.Profile) error {
	log := logger.Log(ctx).With(zap.String("method", methodSignUp), zap.String("email", email))
	log.Debug(ctx, msgSigningUp)

	identity, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		log.Error(ctx, msgErrCreateIdentity, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCreatingIdentity, err)
	}

	log.Info(ctx, msgIdentityCreated, zap.String("userID", identity.ID))

	profile := profileSeed.Clone()
	if profile == nil {
		profile = &entities.Profile{}
	}
	profile.UserID = identity.ID

	if _, err := s.profiles.Create(ctx, profile); err != nil {
		log.Error(ctx, msgErrCreateProfile, zap.Error(err), zap.String("userID", identity.ID))
		return fmt.Errorf("%s: %w", errCtxCreatingProfile, err)
	}

	log.Info(ctx, msgSignedUp, zap.String("userID", identity.ID))
	return nil
}

// SignOut делегирует выход провайдеру и очищает локальное состояние
// независимо от исхода удаленного вызова: после подтвержденного запроса
// на выход хранилище не может остаться аутентифицированным.
func (s *SessionStoreImpl) SignOut(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodSignOut))
	log.Debug(ctx, msgSigningOut)

	err := s.provider.SignOut(ctx)

	s.mu.Lock()
	s.applySessionLocked(nil)
	s.mu.Unlock()

	log.Info(ctx, msgLocalStateCleared)

	if err != nil {
		log.Warn(ctx, msgErrRemoteSignOut, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSigningOut, err)
	}
	return nil
}

// handleNotification применяет уведомление провайдера о смене сессии.
// Уведомления обрабатываются в порядке поступления.
func (s *SessionStoreImpl) handleNotification(session *services.Session) {
	ctx := s.baseCtx
	log := logger.Log(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Debug(ctx, msgNotificationAfterStop)
		return
	}
	log.Debug(ctx, msgSessionNotification, zap.Bool("authenticated", session != nil))
	s.applySessionLocked(session)
	s.mu.Unlock()
}

// applySessionLocked выполняет переход машины состояний. Identity применяется
// синхронно; Profile очищается вместе с Identity и никогда не остается
// устаревшим. Для аутентифицированной сессии запускается асинхронная
// загрузка профиля, привязанная к новой эпохе.
// Вызывается строго под s.mu.
func (s *SessionStoreImpl) applySessionLocked(session *services.Session) {
	s.epoch++

	if session == nil {
		s.state = services.StateAnonymous
		s.identity = nil
		s.profile = nil
		return
	}

	identity := session.Identity
	sameUser := s.identity != nil && s.identity.ID == identity.ID

	s.state = services.StateAuthenticated
	s.identity = &identity
	if !sameUser {
		// Identity становится видимой строго раньше профиля: окно с
		// Identity без Profile ожидаемо и должно переноситься читателями.
		s.profile = nil
	}

	go s.fetchProfile(s.baseCtx, identity.ID, s.epoch)
}

// fetchProfile загружает профиль и применяет его, только если эпоха хранилища
// не изменилась с момента запуска загрузки. Завершение устаревшей загрузки
// отбрасывается: это заменяет настоящую отмену незавершенного вызова.
func (s *SessionStoreImpl) fetchProfile(ctx context.Context, userID string, epoch uint64) {
	log := logger.Log(ctx).With(zap.String("userID", userID))
	log.Debug(ctx, msgFetchingProfile)

	profile, err := s.profiles.FindByUserID(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.epoch != epoch {
		log.Debug(ctx, msgStaleProfileDiscarded,
			zap.Uint64("fetch_epoch", epoch),
			zap.Uint64("store_epoch", s.epoch))
		return
	}

	if err != nil {
		// Профиль может еще не существовать; Identity остается видимой.
		log.Error(ctx, msgErrFetchProfile, zap.Error(err))
		return
	}

	s.profile = profile
	log.Debug(ctx, msgProfileApplied)
}
