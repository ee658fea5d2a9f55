package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"smarthr/config"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"

	"github.com/google/uuid"
)

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	auth := &config.AuthConfig{
		BcryptCost:           4,
		PasswordMinLength:    8,
		MaxLoginAttempts:     5,
		LockoutWindow:        15 * time.Minute,
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      7 * 24 * time.Hour,
		RotateRefreshTokens:  true,
		PasswordResetTTL:     time.Hour,
		EmailVerificationTTL: 24 * time.Hour,
		FrontendBaseURL:      "https://hr.example.com/",
	}
	auth.EnumerationDelay.Min = 100 * time.Millisecond
	auth.EnumerationDelay.Max = 300 * time.Millisecond

	return &config.Config{Auth: auth}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testStart}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// fakeHasher stores passwords with a visible prefix so tests can seed accounts.
type fakeHasher struct{}

func hashed(password string) string {
	return "hashed:" + password
}

func (fakeHasher) Hash(password string) (string, error) {
	return hashed(password), nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == hashed(password)
}

func (fakeHasher) ValidateStrength(password string) error {
	if len(password) < 8 {
		return domainerrors.ErrWeakPassword
	}

	return nil
}

// fakeTokenService hands out opaque tokens and remembers their claims.
type fakeTokenService struct {
	mu     sync.Mutex
	clock  service.Clock
	claims map[string]entity.TokenClaims
}

func newFakeTokenService(clock service.Clock) *fakeTokenService {
	return &fakeTokenService{clock: clock, claims: make(map[string]entity.TokenClaims)}
}

func (s *fakeTokenService) TTL(tokenType entity.TokenType) time.Duration {
	if tokenType == entity.TokenTypeRefresh {
		return 7 * 24 * time.Hour
	}

	return 15 * time.Minute
}

func (s *fakeTokenService) Generate(account *entity.Account, tokenType entity.TokenType) (string, *entity.TokenClaims, error) {
	now := s.clock.Now()
	claims := entity.TokenClaims{
		TokenID:   uuid.New(),
		AccountID: account.ID,
		Role:      account.Role,
		Type:      tokenType,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.TTL(tokenType)),
	}
	token := fmt.Sprintf("%s.%s", tokenType, claims.TokenID)

	s.mu.Lock()
	s.claims[token] = claims
	s.mu.Unlock()

	return token, &claims, nil
}

func (s *fakeTokenService) Parse(token string, tokenType entity.TokenType) (*entity.TokenClaims, error) {
	s.mu.Lock()
	claims, ok := s.claims[token]
	s.mu.Unlock()

	switch {
	case !ok:
		return nil, service.ErrTokenMalformed
	case claims.Type != tokenType:
		return nil, service.ErrTokenWrongType
	case !claims.ExpiresAt.After(s.clock.Now()):
		return nil, service.ErrTokenExpired
	}

	return &claims, nil
}

type fakeSecrets struct {
	mu sync.Mutex
	n  int
}

func (g *fakeSecrets) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++

	return fmt.Sprintf("secret-%d", g.n), nil
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []service.MailMessage
}

func (d *fakeDispatcher) Dispatch(msg service.MailMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sent = append(d.sent, msg)
}

func (d *fakeDispatcher) messages() []service.MailMessage {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.sent)
}

type fakeMetrics struct {
	service.NopMetrics

	mu     sync.Mutex
	logins []string
	locked int
}

func (m *fakeMetrics) LoginAttempt(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logins = append(m.logins, outcome)
}

func (m *fakeMetrics) AccountLocked() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.locked++
}

// rowLocks hands out one mutex per row key, mimicking SELECT ... FOR UPDATE.
type rowLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *rowLocks) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()

	return m.Unlock
}

// memStore is the shared state behind every fake repository.
type memStore struct {
	mu        sync.Mutex
	rows      *rowLocks
	accounts  map[uuid.UUID]entity.Account
	lockouts  map[uuid.UUID]entity.LockoutState
	issued    map[uuid.UUID]entity.IssuedRefreshToken
	blacklist map[uuid.UUID]entity.BlacklistedToken
	ephemeral map[uuid.UUID]entity.EphemeralToken
	activity  []entity.ActivityRecord
	employees map[uuid.UUID]entity.EmployeeProfile
	reviews   map[uuid.UUID]entity.PerformanceReview
	items     map[uuid.UUID]entity.ReviewItem
}

func newMemStore() *memStore {
	return &memStore{
		rows:      &rowLocks{locks: make(map[string]*sync.Mutex)},
		accounts:  make(map[uuid.UUID]entity.Account),
		lockouts:  make(map[uuid.UUID]entity.LockoutState),
		issued:    make(map[uuid.UUID]entity.IssuedRefreshToken),
		blacklist: make(map[uuid.UUID]entity.BlacklistedToken),
		ephemeral: make(map[uuid.UUID]entity.EphemeralToken),
		employees: make(map[uuid.UUID]entity.EmployeeProfile),
		reviews:   make(map[uuid.UUID]entity.PerformanceReview),
		items:     make(map[uuid.UUID]entity.ReviewItem),
	}
}

func (s *memStore) seedAccount(email string, role entity.Role, groups ...entity.Group) *entity.Account {
	account := entity.Account{
		ID:           uuid.New(),
		Email:        entity.NormalizeEmail(email),
		Username:     entity.NormalizeEmail(email),
		PasswordHash: hashed("Correct-Horse-1"),
		Role:         role,
		Groups:       entity.Groups(groups).SyncWithRole(role),
		IsActive:     true,
		CreatedAt:    testStart,
		UpdatedAt:    testStart,
	}

	s.mu.Lock()
	s.accounts[account.ID] = account
	s.mu.Unlock()

	return &account
}

func (s *memStore) seedProfile(accountID uuid.UUID, managerID *uuid.UUID) *entity.EmployeeProfile {
	profile := entity.EmployeeProfile{
		ID:        uuid.New(),
		AccountID: accountID,
		ManagerID: managerID,
		CreatedAt: testStart,
		UpdatedAt: testStart,
	}

	s.mu.Lock()
	s.employees[profile.ID] = profile
	s.mu.Unlock()

	return &profile
}

func (s *memStore) account(id uuid.UUID) entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accounts[id]
}

func (s *memStore) lockout(id uuid.UUID) entity.LockoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lockouts[id]
}

func (s *memStore) activityFor(id uuid.UUID) []entity.ActivityRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.ActivityRecord
	for _, r := range s.activity {
		if r.AccountID == id {
			out = append(out, r)
		}
	}

	return out
}

// memTxManager runs fn against the store. Row locks taken during fn are
// released only after fn returns, as a database would on commit.
type memTxManager struct {
	store *memStore
}

func (tm *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	tx := &memTx{store: tm.store, held: make(map[string]bool)}
	defer tx.release()

	return fn(tx)
}

type memTx struct {
	store   *memStore
	held    map[string]bool
	unlocks []func()
}

func (tx *memTx) lockRow(key string) {
	if tx.held[key] {
		return
	}
	tx.held[key] = true
	tx.unlocks = append(tx.unlocks, tx.store.rows.lock(key))
}

func (tx *memTx) release() {
	for i := len(tx.unlocks) - 1; i >= 0; i-- {
		tx.unlocks[i]()
	}
}

func (tx *memTx) AccountRepo() repository.AccountRepository               { return &memAccountRepo{tx} }
func (tx *memTx) LockoutRepo() repository.LockoutRepository               { return &memLockoutRepo{tx} }
func (tx *memTx) TokenRepo() repository.TokenRepository                   { return &memTokenRepo{tx} }
func (tx *memTx) EphemeralTokenRepo() repository.EphemeralTokenRepository { return &memEphemeralRepo{tx} }
func (tx *memTx) ActivityRepo() repository.ActivityRepository             { return &memActivityRepo{tx} }
func (tx *memTx) EmployeeRepo() repository.EmployeeRepository             { return &memEmployeeRepo{tx} }
func (tx *memTx) ReviewRepo() repository.ReviewRepository                 { return &memReviewRepo{tx} }

type memAccountRepo struct{ tx *memTx }

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return repository.ErrAccountEmailExists
		}
	}
	account.ID = uuid.New()
	if account.Username == "" {
		account.Username = account.Email
	}
	stored := *account
	stored.Groups = slices.Clone(account.Groups)
	s.accounts[account.ID] = stored

	return nil
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	account.Groups = slices.Clone(account.Groups)

	return &account, nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			account.Groups = slices.Clone(account.Groups)

			return &account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memAccountRepo) List(_ context.Context) ([]*entity.Account, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		account := account
		out = append(out, &account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })

	return out, nil
}

func (r *memAccountRepo) update(id uuid.UUID, fn func(*entity.Account)) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	fn(&account)
	s.accounts[id] = account

	return nil
}

func (r *memAccountRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(id, func(a *entity.Account) { a.PasswordHash = passwordHash })
}

func (r *memAccountRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.Role, groups entity.Groups) error {
	return r.update(id, func(a *entity.Account) {
		a.Role = role
		a.Groups = slices.Clone(groups)
	})
}

func (r *memAccountRepo) UpdateGroups(_ context.Context, id uuid.UUID, groups entity.Groups) error {
	return r.update(id, func(a *entity.Account) { a.Groups = slices.Clone(groups) })
}

func (r *memAccountRepo) MarkEmailVerified(_ context.Context, id uuid.UUID, verifiedAt time.Time) error {
	return r.update(id, func(a *entity.Account) { a.MarkEmailVerified(verifiedAt) })
}

type memLockoutRepo struct{ tx *memTx }

func (r *memLockoutRepo) Create(_ context.Context, state *entity.LockoutState) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lockouts[state.AccountID]; !ok {
		s.lockouts[state.AccountID] = *state
	}

	return nil
}

func (r *memLockoutRepo) GetOrCreateForUpdate(ctx context.Context, accountID uuid.UUID) (*entity.LockoutState, error) {
	if err := r.Create(ctx, entity.NewLockoutState(accountID, testStart)); err != nil {
		return nil, err
	}
	r.tx.lockRow("lockout:" + accountID.String())

	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.lockouts[accountID]

	return &state, nil
}

func (r *memLockoutRepo) Save(_ context.Context, state *entity.LockoutState) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lockouts[state.AccountID] = *state

	return nil
}

type memTokenRepo struct{ tx *memTx }

func (r *memTokenRepo) SaveIssued(_ context.Context, token *entity.IssuedRefreshToken) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[token.TokenID] = *token

	return nil
}

func (r *memTokenRepo) IsBlacklisted(_ context.Context, tokenID uuid.UUID) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.blacklist[tokenID]

	return ok, nil
}

func (r *memTokenRepo) Blacklist(_ context.Context, entry *entity.BlacklistedToken) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blacklist[entry.TokenID]; ok {
		return repository.ErrTokenAlreadyBlacklisted
	}
	s.blacklist[entry.TokenID] = *entry

	return nil
}

type memEphemeralRepo struct{ tx *memTx }

func (r *memEphemeralRepo) Create(_ context.Context, token *entity.EphemeralToken) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	token.ID = uuid.New()
	s.ephemeral[token.ID] = *token

	return nil
}

func (r *memEphemeralRepo) FindLatestUnused(_ context.Context, accountID uuid.UUID, kind entity.EphemeralKind) (*entity.EphemeralToken, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *entity.EphemeralToken
	for _, token := range s.ephemeral {
		if token.AccountID != accountID || token.Kind != kind || token.IsUsed {
			continue
		}
		if latest == nil || token.CreatedAt.After(latest.CreatedAt) {
			token := token
			latest = &token
		}
	}
	if latest == nil {
		return nil, repository.ErrEphemeralTokenNotFound
	}

	return latest, nil
}

func (r *memEphemeralRepo) FindByValueForUpdate(_ context.Context, value string, kind entity.EphemeralKind) (*entity.EphemeralToken, error) {
	r.tx.lockRow("ephemeral:" + value)

	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.ephemeral {
		if token.Token == value && token.Kind == kind {
			return &token, nil
		}
	}

	return nil, repository.ErrEphemeralTokenNotFound
}

func (r *memEphemeralRepo) Delete(_ context.Context, id uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ephemeral, id)

	return nil
}

func (r *memEphemeralRepo) MarkUsed(_ context.Context, id uuid.UUID, usedAt time.Time) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.ephemeral[id]
	if !ok || token.IsUsed {
		return repository.ErrEphemeralTokenNotFound
	}
	token.MarkUsed(usedAt)
	s.ephemeral[id] = token

	return nil
}

type memActivityRepo struct{ tx *memTx }

func (r *memActivityRepo) Append(_ context.Context, record *entity.ActivityRecord) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = fmt.Sprintf("%026d", len(s.activity)+1)
	}
	s.activity = append(s.activity, *record)

	return nil
}

func (r *memActivityRepo) ListByAccount(_ context.Context, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.ActivityRecord
	for i := len(s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		if s.activity[i].AccountID == accountID {
			record := s.activity[i]
			out = append(out, &record)
		}
	}

	return out, nil
}

type memEmployeeRepo struct{ tx *memTx }

func (r *memEmployeeRepo) Create(_ context.Context, profile *entity.EmployeeProfile) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.employees {
		if existing.AccountID == profile.AccountID {
			return repository.ErrEmployeeProfileExists
		}
	}
	profile.ID = uuid.New()
	s.employees[profile.ID] = *profile

	return nil
}

func (r *memEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.EmployeeProfile, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.employees[id]
	if !ok {
		return nil, repository.ErrEmployeeNotFound
	}

	return &profile, nil
}

func (r *memEmployeeRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.EmployeeProfile, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, profile := range s.employees {
		if profile.AccountID == accountID {
			return &profile, nil
		}
	}

	return nil, repository.ErrEmployeeNotFound
}

func (r *memEmployeeRepo) UpdateManager(_ context.Context, id uuid.UUID, managerID *uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.employees[id]
	if !ok {
		return repository.ErrEmployeeNotFound
	}
	profile.ManagerID = managerID
	s.employees[id] = profile

	return nil
}

type memReviewRepo struct{ tx *memTx }

func (r *memReviewRepo) Create(_ context.Context, review *entity.PerformanceReview) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[review.EmployeeID]; !ok {
		return repository.ErrEmployeeNotFound
	}
	review.ID = uuid.New()
	stored := *review
	stored.Items = nil
	s.reviews[review.ID] = stored

	return nil
}

func (r *memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.PerformanceReview, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return &review, nil
}

func (r *memReviewRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.PerformanceReview, error) {
	r.tx.lockRow("review:" + id.String())

	return r.FindByID(ctx, id)
}

func (r *memReviewRepo) Update(_ context.Context, review *entity.PerformanceReview) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	stored := *review
	stored.Items = nil
	s.reviews[review.ID] = stored

	return nil
}

func (r *memReviewRepo) ListItems(_ context.Context, reviewID uuid.UUID) ([]entity.ReviewItem, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.ReviewItem
	for _, item := range s.items {
		if item.ReviewID == reviewID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *memReviewRepo) FindItem(_ context.Context, itemID uuid.UUID) (*entity.ReviewItem, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, repository.ErrReviewItemNotFound
	}

	return &item, nil
}

func (r *memReviewRepo) CreateItem(_ context.Context, item *entity.ReviewItem) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New()
	s.items[item.ID] = *item

	return nil
}

func (r *memReviewRepo) UpdateItem(_ context.Context, item *entity.ReviewItem) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return repository.ErrReviewItemNotFound
	}
	s.items[item.ID] = *item

	return nil
}

func (r *memReviewRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return repository.ErrReviewItemNotFound
	}
	delete(s.items, itemID)

	return nil
}

// testEnv wires every service against one memStore.
type testEnv struct {
	store   *memStore
	clock   *fakeClock
	tokens  *fakeTokenService
	mail    *fakeDispatcher
	metrics *fakeMetrics
	cfg     *config.Config
	tx      *memTxManager
}

func newTestEnv() *testEnv {
	store := newMemStore()
	clock := newFakeClock()

	return &testEnv{
		store:   store,
		clock:   clock,
		tokens:  newFakeTokenService(clock),
		mail:    &fakeDispatcher{},
		metrics: &fakeMetrics{},
		cfg:     newTestConfig(),
		tx:      &memTxManager{store: store},
	}
}

func (e *testEnv) authService() *authService {
	return NewAuthService(AuthServiceParams{
		TxManager:  e.tx,
		Hasher:     fakeHasher{},
		Tokens:     e.tokens,
		Secrets:    &fakeSecrets{},
		Dispatcher: e.mail,
		Clock:      e.clock,
		Metrics:    e.metrics,
		Config:     e.cfg,
		Logger:     newTestLogger(),
	}).(*authService)
}

func (e *testEnv) recoveryService() *recoveryService {
	return NewRecoveryService(RecoveryServiceParams{
		TxManager:  e.tx,
		Hasher:     fakeHasher{},
		Secrets:    &fakeSecrets{},
		Dispatcher: e.mail,
		Clock:      e.clock,
		Config:     e.cfg,
		Logger:     newTestLogger(),
	}).(*recoveryService)
}

func (e *testEnv) accountService() *accountService {
	return NewAccountService(AccountServiceParams{
		TxManager: e.tx,
		Clock:     e.clock,
		Config:    e.cfg,
		Logger:    newTestLogger(),
	}).(*accountService)
}

func (e *testEnv) activityService() *activityService {
	return NewActivityService(ActivityServiceParams{
		TxManager: e.tx,
		Logger:    newTestLogger(),
	}).(*activityService)
}

func (e *testEnv) employeeService() *employeeService {
	return NewEmployeeService(EmployeeServiceParams{
		TxManager: e.tx,
		Clock:     e.clock,
		Logger:    newTestLogger(),
	}).(*employeeService)
}

func (e *testEnv) reviewService() *reviewService {
	return NewReviewService(ReviewServiceParams{
		TxManager: e.tx,
		Clock:     e.clock,
		Logger:    newTestLogger(),
	}).(*reviewService)
}

// principalFor builds the principal the auth middleware would produce.
func (e *testEnv) principalFor(account *entity.Account) policy.Principal {
	var profile *entity.EmployeeProfile
	e.store.mu.Lock()
	for _, p := range e.store.employees {
		if p.AccountID == account.ID {
			p := p
			profile = &p
		}
	}
	current := e.store.accounts[account.ID]
	e.store.mu.Unlock()

	return policy.NewPrincipal(&current, profile)
}
