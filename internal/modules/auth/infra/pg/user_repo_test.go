package pg

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepo_Create_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@a.com", "pw-hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	repo := NewUserRepo(mock)
	_, err := repo.Create(context.Background(), domain.CreateUserParams{Email: "a@a.com", PasswordHash: "pw-hash"})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetWithCode_SelectsPair(t *testing.T) {
	mock := newMock(t)
	issuedAt := time.Now().UTC()
	hash := "stored-hash"
	rows := pgxmock.NewRows([]string{
		"id", "email", "verified", "created_at", "updated_at",
		"verification_code_hash", "verification_code_issued_at",
	}).AddRow("user-1", "a@a.com", false, issuedAt, issuedAt, &hash, &issuedAt)
	mock.ExpectQuery(`SELECT .* verification_code_hash, verification_code_issued_at FROM users`).
		WithArgs("a@a.com").
		WillReturnRows(rows)

	repo := NewUserRepo(mock)
	u, err := repo.GetWithCode(context.Background(), "a@a.com", domain.PurposeVerification)

	require.NoError(t, err)
	require.NotNil(t, u.VerificationCodeHash)
	assert.Equal(t, "stored-hash", *u.VerificationCodeHash)
	require.NotNil(t, u.VerificationCodeIssuedAt)
	assert.Nil(t, u.ResetCodeHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ConsumeVerificationCode(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		want         bool
	}{
		{name: "stored hash still matches", rowsAffected: 1, want: true},
		{name: "code already consumed or superseded", rowsAffected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectExec(`UPDATE users\s+SET verified=true, verification_code_hash=NULL`).
				WithArgs("user-1", "expected-hash").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rowsAffected))

			repo := NewUserRepo(mock)
			ok, err := repo.ConsumeVerificationCode(context.Background(), "user-1", "expected-hash")

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_ConsumeResetCode_SwapsPasswordInSameUpdate(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE users\s+SET password_hash=\$3, reset_code_hash=NULL`).
		WithArgs("user-1", "expected-hash", "new-pw-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepo(mock)
	ok, err := repo.ConsumeResetCode(context.Background(), "user-1", "expected-hash", "new-pw-hash")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("missing@a.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "verified", "created_at", "updated_at"}))

	repo := NewUserRepo(mock)
	_, err := repo.GetByEmail(context.Background(), "missing@a.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
