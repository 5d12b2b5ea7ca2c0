package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlyraves/internal/client/app"
	"onlyraves/internal/client/domain/entities"
	"onlyraves/internal/client/domain/services"
	"onlyraves/internal/client/ports/providers"
)

const (
	waitTimeout  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)

var errProviderDown = errors.New("session provider is down")

// fakeSessionProvider имитирует внешний провайдер сессий с ручной
// рассылкой уведомлений.
type fakeSessionProvider struct {
	mu        sync.Mutex
	session   *services.Session
	signInErr error
	signUpErr error

	signOutErr error

	callbacks        map[int]func(session *services.Session)
	nextID           int
	unsubscribeCalls int

	subscribedBeforeSnapshot bool

	// snapshotGate задерживает разрешение начального снимка, пока тест
	// не откроет шлюз.
	snapshotGate chan struct{}
}

func newFakeSessionProvider(session *services.Session) *fakeSessionProvider {
	return &fakeSessionProvider{
		session:   session,
		callbacks: make(map[int]func(session *services.Session)),
	}
}

func (p *fakeSessionProvider) GetCurrentSession(_ context.Context) (*services.Session, error) {
	p.mu.Lock()
	p.subscribedBeforeSnapshot = len(p.callbacks) > 0
	gate := p.snapshotGate
	session := p.session
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if session == nil {
		return nil, nil
	}
	snapshot := *session
	return &snapshot, nil
}

func (p *fakeSessionProvider) subscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.callbacks)
}

func (p *fakeSessionProvider) OnSessionChange(callback func(session *services.Session)) providers.UnsubscribeFunc {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.callbacks[id] = callback
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.callbacks, id)
		p.unsubscribeCalls++
	}
}

func (p *fakeSessionProvider) SignInWithPassword(_ context.Context, _, _ string) (*services.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return p.session, nil
}

func (p *fakeSessionProvider) SignUp(_ context.Context, email, _ string) (*entities.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.signUpErr != nil {
		return nil, p.signUpErr
	}
	return &entities.Identity{ID: "new-user", Email: email}, nil
}

func (p *fakeSessionProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signOutErr
}

// Notify рассылает уведомление всем подписчикам, как это делает провайдер.
func (p *fakeSessionProvider) Notify(session *services.Session) {
	p.mu.Lock()
	callbacks := make([]func(session *services.Session), 0, len(p.callbacks))
	for _, cb := range p.callbacks {
		callbacks = append(callbacks, cb)
	}
	p.mu.Unlock()

	for _, cb := range callbacks {
		cb(session)
	}
}

// gatedProfileRepo имитирует хранилище профилей с управляемым временем
// завершения чтения: загрузка блокируется, пока тест не откроет шлюз.
type gatedProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entities.Profile
	gates    map[string]chan struct{}

	created   []*entities.Profile
	createErr error
}

func newGatedProfileRepo() *gatedProfileRepo {
	return &gatedProfileRepo{
		profiles: make(map[string]*entities.Profile),
		gates:    make(map[string]chan struct{}),
	}
}

func (r *gatedProfileRepo) put(profile *entities.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
}

func (r *gatedProfileRepo) gate(userID string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	gate := make(chan struct{})
	r.gates[userID] = gate
	return gate
}

func (r *gatedProfileRepo) Create(_ context.Context, profile *entities.Profile) (*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, profile)
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *gatedProfileRepo) FindByUserID(_ context.Context, userID string) (*entities.Profile, error) {
	r.mu.Lock()
	gate := r.gates[userID]
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, entities.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

func (r *gatedProfileRepo) Update(_ context.Context, profile *entities.Profile) (*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func sessionFor(userID, email string) *services.Session {
	return &services.Session{
		Identity:    entities.Identity{ID: userID, Email: email},
		AccessToken: "token-" + userID,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func TestSessionStoreStartAnonymous(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	repo := newGatedProfileRepo()
	store := app.NewSessionStore(provider, repo)

	require.True(t, store.Loading(), "store should be loading before start")

	require.NoError(t, store.Start(context.Background()))

	assert.Equal(t, services.StateAnonymous, store.State())
	assert.False(t, store.Loading(), "loading flag drops once the snapshot resolves")

	snapshot := store.Snapshot()
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Profile)
}

func TestSessionStoreSubscribesBeforeSnapshotResolves(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	store := app.NewSessionStore(provider, newGatedProfileRepo())

	require.NoError(t, store.Start(context.Background()))

	assert.True(t, provider.subscribedBeforeSnapshot,
		"subscription must be in place before the initial snapshot resolves")
}

func TestSessionStoreNotificationDuringSnapshotWins(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	gate := make(chan struct{})
	provider.snapshotGate = gate

	repo := newGatedProfileRepo()
	repo.put(&entities.Profile{UserID: "user-x", Username: strPtr("raver_x")})

	store := app.NewSessionStore(provider, repo)

	done := make(chan error, 1)
	go func() {
		done <- store.Start(context.Background())
	}()

	require.Eventually(t, func() bool {
		return provider.subscriberCount() > 0
	}, waitTimeout, pollInterval, "subscription precedes the snapshot request")

	// Вход завершился, пока начальный снимок еще разрешался: анонимный
	// снимок устарел и не должен перезатереть более новое уведомление.
	provider.Notify(sessionFor("user-x", "x@example.com"))
	close(gate)

	require.NoError(t, <-done)

	assert.Equal(t, services.StateAuthenticated, store.State(),
		"a sign-in resolved during initialization survives the older snapshot")
	snapshot := store.Snapshot()
	require.NotNil(t, snapshot.Identity)
	assert.Equal(t, "user-x", snapshot.Identity.ID)
}

func TestSessionStoreStartAuthenticated(t *testing.T) {
	provider := newFakeSessionProvider(sessionFor("user-x", "x@example.com"))
	repo := newGatedProfileRepo()
	repo.put(&entities.Profile{UserID: "user-x", Username: strPtr("raver_x")})

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	// Identity применена синхронно, профиль догружается асинхронно.
	snapshot := store.Snapshot()
	require.NotNil(t, snapshot.Identity)
	assert.Equal(t, "user-x", snapshot.Identity.ID)
	assert.Equal(t, services.StateAuthenticated, store.State())

	require.Eventually(t, func() bool {
		return store.Snapshot().Profile != nil
	}, waitTimeout, pollInterval, "profile should be applied after the async fetch")

	assert.Equal(t, "user-x", store.Snapshot().Profile.UserID)
}

func TestSessionStoreDoubleStart(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	store := app.NewSessionStore(provider, newGatedProfileRepo())

	require.NoError(t, store.Start(context.Background()))

	err := store.Start(context.Background())
	assert.ErrorIs(t, err, app.ErrStoreAlreadyStarted)
}

func TestSessionStoreStaleProfileFetchDiscarded(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	repo := newGatedProfileRepo()
	repo.put(&entities.Profile{UserID: "user-a", Username: strPtr("raver_a")})
	repo.put(&entities.Profile{UserID: "user-b", Username: strPtr("raver_b")})
	gateA := repo.gate("user-a")
	gateB := repo.gate("user-b")

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	// Пользователь A входит, затем его сменяет B; загрузка профиля A
	// завершается последней.
	provider.Notify(sessionFor("user-a", "a@example.com"))
	provider.Notify(sessionFor("user-b", "b@example.com"))

	close(gateB)
	require.Eventually(t, func() bool {
		profile := store.Snapshot().Profile
		return profile != nil && profile.UserID == "user-b"
	}, waitTimeout, pollInterval, "profile of the current identity should be applied")

	close(gateA)

	// Завершение устаревшей загрузки не должно перезатереть профиль B.
	time.Sleep(50 * time.Millisecond)
	profile := store.Snapshot().Profile
	require.NotNil(t, profile)
	assert.Equal(t, "user-b", profile.UserID,
		"stale fetch for the previous identity must be discarded")
}

func TestSessionStoreSameUserNotificationKeepsProfile(t *testing.T) {
	provider := newFakeSessionProvider(sessionFor("user-x", "x@example.com"))
	repo := newGatedProfileRepo()
	repo.put(&entities.Profile{UserID: "user-x", Username: strPtr("raver_x")})

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	require.Eventually(t, func() bool {
		return store.Snapshot().Profile != nil
	}, waitTimeout, pollInterval)

	// Повторное уведомление для того же пользователя (обновление токена)
	// не должно сбрасывать уже загруженный профиль.
	provider.Notify(sessionFor("user-x", "x@example.com"))

	assert.NotNil(t, store.Snapshot().Profile,
		"profile survives a notification that keeps the same identity")
}

func TestSessionStoreSignOutNotificationClearsBoth(t *testing.T) {
	provider := newFakeSessionProvider(sessionFor("user-x", "x@example.com"))
	repo := newGatedProfileRepo()
	repo.put(&entities.Profile{UserID: "user-x"})

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	require.Eventually(t, func() bool {
		return store.Snapshot().Profile != nil
	}, waitTimeout, pollInterval)

	provider.Notify(nil)

	snapshot := store.Snapshot()
	assert.Equal(t, services.StateAnonymous, snapshot.State)
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Profile)
}

func TestSessionStoreSignInErrorReturnedUnmodified(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	provider.signInErr = services.ErrInvalidCredentials

	store := app.NewSessionStore(provider, newGatedProfileRepo())
	require.NoError(t, store.Start(context.Background()))

	err := store.SignIn(context.Background(), "x@example.com", "wrong")

	assert.Equal(t, services.ErrInvalidCredentials, err,
		"provider error must surface without wrapping")
	assert.Equal(t, services.StateAnonymous, store.State(),
		"failed sign-in must not mutate local state")
}

func TestSessionStoreSignUpCreatesProfileForNewIdentity(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	repo := newGatedProfileRepo()

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	seed := &entities.Profile{Username: strPtr("fresh_ravers"), Age: intPtr(21)}
	require.NoError(t, store.SignUp(context.Background(), "new@example.com", "secret123", seed))

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "new-user", created.UserID, "profile key comes from the created identity")
	assert.Equal(t, "fresh_ravers", *created.Username)
}

func TestSessionStoreSignUpProfileFailureSurfaces(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	repo := newGatedProfileRepo()
	repo.createErr = errProviderDown

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	err := store.SignUp(context.Background(), "new@example.com", "secret123", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, errProviderDown,
		"profile creation failure surfaces; the identity is not rolled back")
}

func TestSessionStoreSignOutClearsStateDespiteRemoteError(t *testing.T) {
	provider := newFakeSessionProvider(sessionFor("user-x", "x@example.com"))
	provider.signOutErr = errProviderDown
	repo := newGatedProfileRepo()
	repo.put(&entities.Profile{UserID: "user-x"})

	store := app.NewSessionStore(provider, repo)
	require.NoError(t, store.Start(context.Background()))

	err := store.SignOut(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errProviderDown)

	snapshot := store.Snapshot()
	assert.Equal(t, services.StateAnonymous, snapshot.State,
		"local state clears even when the remote sign-out fails")
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Profile)
}

func TestSessionStoreNotificationAfterCloseIgnored(t *testing.T) {
	provider := newFakeSessionProvider(nil)
	store := app.NewSessionStore(provider, newGatedProfileRepo())
	require.NoError(t, store.Start(context.Background()))

	store.Close()
	assert.Equal(t, 1, provider.unsubscribeCalls)

	provider.Notify(sessionFor("user-x", "x@example.com"))

	assert.Equal(t, services.StateAnonymous, store.State(),
		"notifications after close must be ignored")
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
