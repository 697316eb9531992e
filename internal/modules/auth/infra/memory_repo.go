package infra

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
)

type memUserRepo struct {
	mu      sync.RWMutex
	users   map[string]*domain.User // id -> user
	byEmail map[string]string       // email -> id
}

func NewMemUserRepo() domain.UserRepo {
	return &memUserRepo{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memUserRepo) Create(_ context.Context, p domain.CreateUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[p.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	now := time.Now().UTC()
	hash := p.PasswordHash
	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        p.Email,
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return public(u), nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, err := r.lookupEmail(email)
	if err != nil {
		return nil, err
	}
	return public(u), nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return public(u), nil
}

func (r *memUserRepo) GetWithPassword(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, err := r.lookupEmail(email)
	if err != nil {
		return nil, err
	}
	cp := *public(u)
	cp.PasswordHash = u.PasswordHash
	return &cp, nil
}

func (r *memUserRepo) GetWithPasswordByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *public(u)
	cp.PasswordHash = u.PasswordHash
	return &cp, nil
}

func (r *memUserRepo) GetWithCode(_ context.Context, email string, p domain.CodePurpose) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, err := r.lookupEmail(email)
	if err != nil {
		return nil, err
	}
	cp := *public(u)
	if p == domain.PurposeReset {
		cp.ResetCodeHash = u.ResetCodeHash
		cp.ResetCodeIssuedAt = u.ResetCodeIssuedAt
	} else {
		cp.VerificationCodeHash = u.VerificationCodeHash
		cp.VerificationCodeIssuedAt = u.VerificationCodeIssuedAt
	}
	return &cp, nil
}

func (r *memUserRepo) SetCode(_ context.Context, userID string, p domain.CodePurpose, hash string, issuedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if p == domain.PurposeReset {
		u.ResetCodeHash = &hash
		u.ResetCodeIssuedAt = &issuedAt
	} else {
		u.VerificationCodeHash = &hash
		u.VerificationCodeIssuedAt = &issuedAt
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) ConsumeVerificationCode(_ context.Context, userID, expectedHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if u.VerificationCodeHash == nil || *u.VerificationCodeHash != expectedHash {
		return false, nil
	}
	u.Verified = true
	u.VerificationCodeHash = nil
	u.VerificationCodeIssuedAt = nil
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *memUserRepo) ConsumeResetCode(_ context.Context, userID, expectedHash, newPasswordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if u.ResetCodeHash == nil || *u.ResetCodeHash != expectedHash {
		return false, nil
	}
	u.PasswordHash = &newPasswordHash
	u.ResetCodeHash = nil
	u.ResetCodeIssuedAt = nil
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = &newHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) lookupEmail(email string) (*domain.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.users[id], nil
}

// public copies a user with every secret field stripped, mirroring the
// selective reads of the pg repo.
func public(u *domain.User) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
