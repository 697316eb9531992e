package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostRepo struct{ db DB }

func NewPostRepo(db DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p domain.CreatePostParams) (*domain.Post, error) {
	q := `
INSERT INTO posts (title, description, user_id)
VALUES ($1, $2, $3)
RETURNING id, title, description, user_id, created_at, updated_at`
	var post domain.Post
	err := r.db.QueryRow(ctx, q, p.Title, p.Description, p.UserID).
		Scan(&post.ID, &post.Title, &post.Description, &post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	q := `
SELECT p.id, p.title, p.description, p.user_id, u.email, p.created_at, p.updated_at
FROM posts p JOIN users u ON u.id = p.user_id
WHERE p.id = $1`
	var post domain.Post
	err := r.db.QueryRow(ctx, q, id).
		Scan(&post.ID, &post.Title, &post.Description, &post.UserID, &post.UserEmail, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepo) List(ctx context.Context, page, perPage int) ([]domain.Post, error) {
	if page < 1 {
		page = 1
	}
	q := `
SELECT p.id, p.title, p.description, p.user_id, u.email, p.created_at, p.updated_at
FROM posts p JOIN users u ON u.id = p.user_id
ORDER BY p.created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.UserEmail, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, id, title, description string) (*domain.Post, error) {
	q := `
UPDATE posts SET title=$2, description=$3, updated_at=now()
WHERE id=$1
RETURNING id, title, description, user_id, created_at, updated_at`
	var post domain.Post
	err := r.db.QueryRow(ctx, q, id, title, description).
		Scan(&post.ID, &post.Title, &post.Description, &post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
