package infra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ermanaknc/auth-api/internal/modules/posts/domain"
)

type memPostRepo struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
}

func NewMemPostRepo() domain.PostRepo {
	return &memPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *memPostRepo) Create(_ context.Context, p domain.CreatePostParams) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	post := &domain.Post{
		ID:          uuid.New().String(),
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.posts[post.ID] = post
	cp := *post
	return &cp, nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) List(_ context.Context, page, perPage int) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(all) {
		return []domain.Post{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *memPostRepo) Update(_ context.Context, id, title, description string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}
