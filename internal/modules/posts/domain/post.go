package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
)

// Post is a user-owned content record. Reads are public; mutation is
// gated on ownership.
type Post struct {
	ID          string
	Title       string
	Description string
	UserID      string
	UserEmail   string // owner's email, populated on reads
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuthorizeOwner allows a mutation only when the acting identity is the
// recorded owner. An empty actor id never matches anything.
func (p *Post) AuthorizeOwner(actingUserID string) error {
	if actingUserID == "" || p.UserID != actingUserID {
		return ErrForbidden
	}
	return nil
}

type CreatePostParams struct {
	Title       string
	Description string
	UserID      string
}

type PostRepo interface {
	Create(ctx context.Context, p CreatePostParams) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	// List returns a page of posts, newest first.
	List(ctx context.Context, page, perPage int) ([]Post, error)
	Update(ctx context.Context, id, title, description string) (*Post, error)
	Delete(ctx context.Context, id string) error
}
