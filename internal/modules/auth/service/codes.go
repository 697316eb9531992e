package service

import (
	"context"
	"time"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

// CodeSender delivers a freshly issued code out of band. A returned
// error means the code was not handed to the user, so it must not be
// persisted either.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendResetCode(ctx context.Context, to, code string) error
}

// CodeService is the one-time code engine: it issues 6-digit codes,
// persists only their keyed hash, and consumes them against expiry and
// hash equality. Issuing for a purpose that already has an outstanding
// code overwrites it; the old code is dead from that point on.
type CodeService struct {
	users  domain.UserRepo
	sender CodeSender
	hasher *security.CodeHasher
	ttl    time.Duration

	now func() time.Time
}

func NewCodeService(users domain.UserRepo, sender CodeSender, hasher *security.CodeHasher, ttl time.Duration) *CodeService {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &CodeService{
		users:  users,
		sender: sender,
		hasher: hasher,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue generates, delivers and records a code for the given purpose.
// The pair is written only after the mail went out.
func (s *CodeService) Issue(ctx context.Context, email string, purpose domain.CodePurpose) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := security.RandomDigits(6)
	if err != nil {
		return err
	}

	if purpose == domain.PurposeReset {
		err = s.sender.SendResetCode(ctx, u.Email, code)
	} else {
		err = s.sender.SendVerificationCode(ctx, u.Email, code)
	}
	if err != nil {
		return err
	}

	return s.users.SetCode(ctx, u.ID, purpose, s.hasher.Hash(code), s.now().UTC())
}

// ConsumeVerification validates a submitted verification code and, on
// success, flips the account to verified and clears the pair in one
// conditional mutation.
func (s *CodeService) ConsumeVerification(ctx context.Context, email, code string) error {
	u, err := s.users.GetWithCode(ctx, email, domain.PurposeVerification)
	if err != nil {
		return err
	}
	if u.Verified {
		return domain.ErrAlreadyVerified
	}

	storedHash, err := s.check(u, domain.PurposeVerification, code)
	if err != nil {
		return err
	}

	ok, err := s.users.ConsumeVerificationCode(ctx, u.ID, storedHash)
	if err != nil {
		return err
	}
	if !ok {
		// lost the race: the code was consumed or reissued meanwhile
		return domain.ErrCodeInvalid
	}
	return nil
}

// ConsumeReset validates a submitted reset code and swaps in the new
// password hash atomically with clearing the pair.
func (s *CodeService) ConsumeReset(ctx context.Context, email, code, newPassword string) error {
	u, err := s.users.GetWithCode(ctx, email, domain.PurposeReset)
	if err != nil {
		return err
	}

	storedHash, err := s.check(u, domain.PurposeReset, code)
	if err != nil {
		return err
	}

	newHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.users.ConsumeResetCode(ctx, u.ID, storedHash, newHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCodeInvalid
	}
	return nil
}

// check runs the precondition chain in its fixed order: pair present,
// not expired (strictly more than ttl elapsed fails), hash equality.
func (s *CodeService) check(u *domain.User, purpose domain.CodePurpose, code string) (string, error) {
	storedHash, issuedAt := u.CodeState(purpose)
	if storedHash == nil || issuedAt == nil {
		return "", domain.ErrCodeInvalid
	}
	if s.now().Sub(*issuedAt) > s.ttl {
		return "", domain.ErrCodeExpired
	}
	if !s.hasher.Equal(code, *storedHash) {
		return "", domain.ErrCodeInvalid
	}
	return *storedHash, nil
}
