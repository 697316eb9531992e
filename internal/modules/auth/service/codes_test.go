package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
	"github.com/ermanaknc/auth-api/internal/modules/auth/infra"
	"github.com/ermanaknc/auth-api/internal/platform/security"
)

type fakeSender struct {
	lastTo   string
	lastCode string
	failWith error
}

func (f *fakeSender) SendVerificationCode(_ context.Context, to, code string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.lastTo, f.lastCode = to, code
	return nil
}

func (f *fakeSender) SendResetCode(_ context.Context, to, code string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.lastTo, f.lastCode = to, code
	return nil
}

type fixture struct {
	users  domain.UserRepo
	sender *fakeSender
	svc    *CodeService
	user   *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := infra.NewMemUserRepo()
	sender := &fakeSender{}
	svc := NewCodeService(users, sender, security.NewCodeHasher("hmac-secret"), 5*time.Minute)

	pwHash, err := security.HashPassword("Abc123!")
	require.NoError(t, err)
	u, err := users.Create(context.Background(), domain.CreateUserParams{
		Email:        "a@a.com",
		PasswordHash: pwHash,
	})
	require.NoError(t, err)

	return &fixture{users: users, sender: sender, svc: svc, user: u}
}

// freeze pins the engine clock to base and returns a shift function.
func (f *fixture) freeze(base time.Time) func(d time.Duration) {
	now := base
	f.svc.now = func() time.Time { return now }
	return func(d time.Duration) { now = base.Add(d) }
}

func TestIssue_StoresHashedPair(t *testing.T) {
	f := newFixture(t)
	base := time.Now().UTC()
	f.freeze(base)

	err := f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification)
	require.NoError(t, err)
	assert.Equal(t, "a@a.com", f.sender.lastTo)
	require.Len(t, f.sender.lastCode, 6)

	u, err := f.users.GetWithCode(context.Background(), "a@a.com", domain.PurposeVerification)
	require.NoError(t, err)
	require.NotNil(t, u.VerificationCodeHash)
	require.NotNil(t, u.VerificationCodeIssuedAt)
	// the plaintext code is never stored
	assert.NotEqual(t, f.sender.lastCode, *u.VerificationCodeHash)
	assert.Equal(t, base, *u.VerificationCodeIssuedAt)
}

func TestIssue_MailFailureLeavesNoCode(t *testing.T) {
	f := newFixture(t)
	f.sender.failWith = errors.New("smtp unreachable")

	err := f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification)
	require.Error(t, err)

	u, err := f.users.GetWithCode(context.Background(), "a@a.com", domain.PurposeVerification)
	require.NoError(t, err)
	assert.Nil(t, u.VerificationCodeHash)
	assert.Nil(t, u.VerificationCodeIssuedAt)
}

func TestIssue_UnknownUser(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Issue(context.Background(), "nobody@a.com", domain.PurposeVerification)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumeVerification_Success(t *testing.T) {
	f := newFixture(t)
	shift := f.freeze(time.Now().UTC())

	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
	code := f.sender.lastCode

	shift(299 * time.Second)
	require.NoError(t, f.svc.ConsumeVerification(context.Background(), "a@a.com", code))

	u, err := f.users.GetWithCode(context.Background(), "a@a.com", domain.PurposeVerification)
	require.NoError(t, err)
	assert.True(t, u.Verified)
	assert.Nil(t, u.VerificationCodeHash)
	assert.Nil(t, u.VerificationCodeIssuedAt)
}

func TestConsumeVerification_SingleUse(t *testing.T) {
	f := newFixture(t)
	shift := f.freeze(time.Now().UTC())

	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
	code := f.sender.lastCode

	shift(299 * time.Second)
	require.NoError(t, f.svc.ConsumeVerification(context.Background(), "a@a.com", code))

	// replay after consumption fails as invalid, not expired — but the
	// verified fast path wins for this purpose
	shift(301 * time.Second)
	err := f.svc.ConsumeVerification(context.Background(), "a@a.com", code)
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
}

func TestConsumeVerification_ExpiryBoundary(t *testing.T) {
	f := newFixture(t)

	t.Run("just inside the window", func(t *testing.T) {
		shift := f.freeze(time.Now().UTC())
		require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
		code := f.sender.lastCode

		shift(5*time.Minute - time.Second)
		assert.NoError(t, f.svc.ConsumeVerification(context.Background(), "a@a.com", code))
	})

	t.Run("just past the window", func(t *testing.T) {
		f := newFixture(t)
		shift := f.freeze(time.Now().UTC())
		require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
		code := f.sender.lastCode

		shift(5*time.Minute + time.Second)
		err := f.svc.ConsumeVerification(context.Background(), "a@a.com", code)
		assert.ErrorIs(t, err, domain.ErrCodeExpired)
	})
}

func TestConsumeVerification_WrongCode(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))

	err := f.svc.ConsumeVerification(context.Background(), "a@a.com", "000000")
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

func TestConsumeVerification_NoOutstandingCode(t *testing.T) {
	f := newFixture(t)
	err := f.svc.ConsumeVerification(context.Background(), "a@a.com", "482913")
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

func TestConsumeVerification_AlreadyVerified(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
	require.NoError(t, f.svc.ConsumeVerification(context.Background(), "a@a.com", f.sender.lastCode))

	// fails fast without inspecting the code at all
	err := f.svc.ConsumeVerification(context.Background(), "a@a.com", "not-even-a-code")
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
}

func TestIssue_SupersedesOutstandingCode(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
	first := f.sender.lastCode
	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
	second := f.sender.lastCode

	if first != second {
		err := f.svc.ConsumeVerification(context.Background(), "a@a.com", first)
		assert.ErrorIs(t, err, domain.ErrCodeInvalid)
	}
	assert.NoError(t, f.svc.ConsumeVerification(context.Background(), "a@a.com", second))
}

func TestConsumeReset_ReplacesPassword(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeReset))
	code := f.sender.lastCode

	require.NoError(t, f.svc.ConsumeReset(context.Background(), "a@a.com", code, "NewPass99!"))

	u, err := f.users.GetWithPassword(context.Background(), "a@a.com")
	require.NoError(t, err)
	require.NotNil(t, u.PasswordHash)
	assert.True(t, security.CheckPassword(*u.PasswordHash, "NewPass99!"))
	assert.False(t, security.CheckPassword(*u.PasswordHash, "Abc123!"))

	// pair cleared: replay fails as invalid, not expired
	err = f.svc.ConsumeReset(context.Background(), "a@a.com", code, "Another1!")
	assert.ErrorIs(t, err, domain.ErrCodeInvalid)
}

func TestConsumeReset_IndependentFromVerification(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeVerification))
	verifyCode := f.sender.lastCode
	require.NoError(t, f.svc.Issue(context.Background(), "a@a.com", domain.PurposeReset))
	resetCode := f.sender.lastCode

	// consuming the reset code leaves the verification code intact
	require.NoError(t, f.svc.ConsumeReset(context.Background(), "a@a.com", resetCode, "NewPass99!"))
	assert.NoError(t, f.svc.ConsumeVerification(context.Background(), "a@a.com", verifyCode))
}
