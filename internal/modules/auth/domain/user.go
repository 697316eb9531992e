package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("not_found")
	ErrEmailTaken      = errors.New("email_taken")
	ErrAlreadyVerified = errors.New("already_verified")
	ErrCodeInvalid     = errors.New("code_invalid")
	ErrCodeExpired     = errors.New("code_expired")
)

// CodePurpose selects which hash+timestamp pair on the user a one-time
// code operation reads and writes.
type CodePurpose string

const (
	PurposeVerification CodePurpose = "verification"
	PurposeReset        CodePurpose = "reset"
)

// User is the persisted account record. The secret fields (password
// hash, code pairs) are nil on default reads and only populated by the
// repo methods that explicitly select them.
//
// Invariant: a code hash and its issued-at timestamp are always set and
// cleared together, per purpose.
type User struct {
	ID       string
	Email    string
	Verified bool

	PasswordHash *string

	VerificationCodeHash     *string
	VerificationCodeIssuedAt *time.Time
	ResetCodeHash            *string
	ResetCodeIssuedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CodeState returns the stored pair for a purpose. Both values are nil
// when no code is outstanding.
func (u *User) CodeState(p CodePurpose) (*string, *time.Time) {
	if p == PurposeReset {
		return u.ResetCodeHash, u.ResetCodeIssuedAt
	}
	return u.VerificationCodeHash, u.VerificationCodeIssuedAt
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
}

type UserRepo interface {
	Create(ctx context.Context, p CreateUserParams) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByEmail and GetByID exclude secret fields.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	// GetWithPassword additionally selects the password hash.
	GetWithPassword(ctx context.Context, email string) (*User, error)
	GetWithPasswordByID(ctx context.Context, id string) (*User, error)

	// GetWithCode additionally selects the code pair for the purpose.
	GetWithCode(ctx context.Context, email string, p CodePurpose) (*User, error)

	// SetCode stores a fresh hash+issuedAt pair, overwriting any
	// outstanding code for the same purpose.
	SetCode(ctx context.Context, userID string, p CodePurpose, hash string, issuedAt time.Time) error

	// ConsumeVerificationCode atomically sets verified and clears the
	// verification pair, but only while the stored hash still equals
	// expectedHash. Returns false when the conditional update matched
	// nothing (code consumed or superseded concurrently).
	ConsumeVerificationCode(ctx context.Context, userID, expectedHash string) (bool, error)

	// ConsumeResetCode is the same conditional update for the reset
	// pair; the password hash is replaced in the same mutation.
	ConsumeResetCode(ctx context.Context, userID, expectedHash, newPasswordHash string) (bool, error)

	UpdatePassword(ctx context.Context, userID, newHash string) error
}
