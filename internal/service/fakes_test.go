package service

import (
	"context"
	"sync"

	"journal-be/internal/entity"
	"journal-be/internal/repository/contract"
	"journal-be/internal/repository/specification"
	"journal-be/internal/repository/unitofwork"
	"journal-be/pkg/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// In-memory doubles for the repository contracts. Specifications are
// interpreted by type switch rather than SQL, enough to mirror the
// ownership scoping the real implementations apply.

type fakeEntryRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.Entry

	createCalls int
	findCalls   int
}

func newFakeEntryRepository() *fakeEntryRepository {
	return &fakeEntryRepository{entries: make(map[uuid.UUID]*entity.Entry)}
}

type entryFilter struct {
	id     *uuid.UUID
	userId *uuid.UUID
	desc   bool
}

func parseSpecs(specs []specification.Specification) entryFilter {
	var f entryFilter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			f.id = &id
		case specification.UserOwnedBy:
			uid := v.UserID
			f.userId = &uid
		case specification.OrderBy:
			f.desc = v.Desc
		}
	}
	return f
}

func (f entryFilter) matches(e *entity.Entry) bool {
	if f.id != nil && e.Id != *f.id {
		return false
	}
	if f.userId != nil && e.UserId != *f.userId {
		return false
	}
	return true
}

func (r *fakeEntryRepository) Create(_ context.Context, entry *entity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	copied := *entry
	r.entries[entry.Id] = &copied
	return nil
}

func (r *fakeEntryRepository) Update(_ context.Context, entry *entity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries[entry.Id] = &copied
	return nil
}

func (r *fakeEntryRepository) Delete(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter := parseSpecs(specs)
	var rows int64
	for id, e := range r.entries {
		if filter.matches(e) {
			delete(r.entries, id)
			rows++
		}
	}
	return rows, nil
}

func (r *fakeEntryRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	filter := parseSpecs(specs)
	for _, e := range r.entries {
		if filter.matches(e) {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	filter := parseSpecs(specs)
	result := []*entity.Entry{}
	for _, e := range r.entries {
		if filter.matches(e) {
			copied := *e
			result = append(result, &copied)
		}
	}
	// Stable order: created_at, flipped when the spec asked for DESC.
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			before := result[i].CreatedAt.Before(result[j].CreatedAt)
			if (filter.desc && before) || (!filter.desc && !before) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *fakeEntryRepository) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter := parseSpecs(specs)
	var n int64
	for _, e := range r.entries {
		if filter.matches(e) {
			n++
		}
	}
	return n, nil
}

type fakeUserRepository struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entity.User
	refresh     map[string]*entity.UserRefreshToken
	resetTokens map[string]*entity.PasswordResetToken

	findErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:       make(map[uuid.UUID]*entity.User),
		refresh:     make(map[string]*entity.UserRefreshToken),
		resetTokens: make(map[string]*entity.PasswordResetToken),
	}
}

func (r *fakeUserRepository) seedUser(email, password, fullName string) *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
	}
	r.users[user.Id] = user
	return user
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByEmail:
			for _, u := range r.users {
				if u.Email == v.Email {
					copied := *u
					return &copied, nil
				}
			}
			return nil, nil
		case specification.ByID:
			if u, ok := r.users[v.ID]; ok {
				copied := *u
				return &copied, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepository) CreateRefreshToken(_ context.Context, token *entity.UserRefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.refresh[token.TokenHash] = &copied
	return nil
}

func (r *fakeUserRepository) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.refresh[tokenHash]; ok {
		t.Revoked = true
	}
	return nil
}

func (r *fakeUserRepository) CreatePasswordResetToken(_ context.Context, token *entity.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.resetTokens[token.Token] = &copied
	return nil
}

func (r *fakeUserRepository) FindPasswordResetToken(_ context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range specs {
		if v, ok := s.(specification.ByToken); ok {
			if t, found := r.resetTokens[v.Token]; found {
				copied := *t
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) MarkTokenUsed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.resetTokens {
		if t.Id == id {
			t.Used = true
		}
	}
	return nil
}

type appendedLog struct {
	level   string
	module  string
	message string
}

type fakeSystemLogRepository struct {
	mu       sync.Mutex
	appended []appendedLog
}

func (r *fakeSystemLogRepository) Append(_ context.Context, level, module, message string, _ map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appended = append(r.appended, appendedLog{level: level, module: module, message: message})
	return nil
}

func (r *fakeSystemLogRepository) snapshot() []appendedLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]appendedLog, len(r.appended))
	copy(out, r.appended)
	return out
}

type fakeUnitOfWork struct {
	entries *fakeEntryRepository
	users   *fakeUserRepository
	logs    *fakeSystemLogRepository
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return u.users
}

func (u *fakeUnitOfWork) EntryRepository() contract.EntryRepository {
	return u.entries
}

func (u *fakeUnitOfWork) SystemLogRepository() contract.SystemLogRepository {
	return u.logs
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUnitOfWork{
			entries: newFakeEntryRepository(),
			users:   newFakeUserRepository(),
			logs:    &fakeSystemLogRepository{},
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*store.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*store.Session)}
}

func (s *fakeSessionStore) Save(_ context.Context, session *store.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (*store.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeEmailService) SendResetToken(toEmail, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, token)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(_, _ string, _ map[string]interface{}) {}
func (nopLogger) Info(_, _ string, _ map[string]interface{})  {}
func (nopLogger) Warn(_, _ string, _ map[string]interface{})  {}
func (nopLogger) Error(_, _ string, _ map[string]interface{}) {}
func (nopLogger) Sync() error                                 { return nil }
