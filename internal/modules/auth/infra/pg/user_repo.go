package pg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ermanaknc/auth-api/internal/modules/auth/domain"
)

// DB is the slice of pgxpool.Pool the repo needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepo struct{ db DB }

func NewUserRepo(db DB) *UserRepo { return &UserRepo{db: db} }

const publicCols = `id, email, verified, created_at, updated_at`

func scanPublic(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Verified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, p domain.CreateUserParams) (*domain.User, error) {
	q := `
INSERT INTO users (email, password_hash)
VALUES (LOWER($1), $2)
RETURNING ` + publicCols
	u, err := scanPublic(r.db.QueryRow(ctx, q, p.Email, p.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=LOWER($1))`, email).Scan(&ok)
	return ok, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + publicCols + ` FROM users WHERE email = LOWER($1)`
	return scanPublic(r.db.QueryRow(ctx, q, strings.ToLower(email)))
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := `SELECT ` + publicCols + ` FROM users WHERE id = $1`
	return scanPublic(r.db.QueryRow(ctx, q, id))
}

func (r *UserRepo) GetWithPassword(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + publicCols + `, password_hash FROM users WHERE email = LOWER($1)`
	var u domain.User
	err := r.db.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Verified, &u.CreatedAt, &u.UpdatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetWithPasswordByID(ctx context.Context, id string) (*domain.User, error) {
	q := `SELECT ` + publicCols + `, password_hash FROM users WHERE id = $1`
	var u domain.User
	err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Verified, &u.CreatedAt, &u.UpdatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetWithCode(ctx context.Context, email string, p domain.CodePurpose) (*domain.User, error) {
	var u domain.User
	var hash *string
	var issuedAt *time.Time
	q := `SELECT ` + publicCols + `, ` + codeCols(p) + ` FROM users WHERE email = LOWER($1)`
	err := r.db.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Verified, &u.CreatedAt, &u.UpdatedAt, &hash, &issuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if p == domain.PurposeReset {
		u.ResetCodeHash, u.ResetCodeIssuedAt = hash, issuedAt
	} else {
		u.VerificationCodeHash, u.VerificationCodeIssuedAt = hash, issuedAt
	}
	return &u, nil
}

func (r *UserRepo) SetCode(ctx context.Context, userID string, p domain.CodePurpose, hash string, issuedAt time.Time) error {
	var q string
	if p == domain.PurposeReset {
		q = `UPDATE users SET reset_code_hash=$2, reset_code_issued_at=$3, updated_at=now() WHERE id=$1`
	} else {
		q = `UPDATE users SET verification_code_hash=$2, verification_code_issued_at=$3, updated_at=now() WHERE id=$1`
	}
	tag, err := r.db.Exec(ctx, q, userID, hash, issuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConsumeVerificationCode is the verify-and-clear step as one
// conditional update: it only fires while the stored hash still equals
// the one the caller checked, which closes the read-check-write race.
func (r *UserRepo) ConsumeVerificationCode(ctx context.Context, userID, expectedHash string) (bool, error) {
	q := `
UPDATE users
SET verified=true, verification_code_hash=NULL, verification_code_issued_at=NULL, updated_at=now()
WHERE id=$1 AND verification_code_hash=$2`
	tag, err := r.db.Exec(ctx, q, userID, expectedHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepo) ConsumeResetCode(ctx context.Context, userID, expectedHash, newPasswordHash string) (bool, error) {
	q := `
UPDATE users
SET password_hash=$3, reset_code_hash=NULL, reset_code_issued_at=NULL, updated_at=now()
WHERE id=$1 AND reset_code_hash=$2`
	tag, err := r.db.Exec(ctx, q, userID, expectedHash, newPasswordHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, newHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, userID, newHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func codeCols(p domain.CodePurpose) string {
	if p == domain.PurposeReset {
		return `reset_code_hash, reset_code_issued_at`
	}
	return `verification_code_hash, verification_code_issued_at`
}
