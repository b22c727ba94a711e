package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

// In-memory repositories for exercising the full HTTP stack.

type memUsers struct {
	mu   sync.Mutex
	byID map[string]domain.User
	seq  int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]domain.User{}} }

func (r *memUsers) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	r.seq++
	stored := *user
	stored.ID = fmt.Sprintf("user-%03d", r.seq)
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *memUsers) update(id string, apply func(*domain.User)) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	apply(&u)
	r.byID[id] = u
	return &u, nil
}

func (r *memUsers) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	return r.update(id, func(u *domain.User) { u.Role = role })
}

func (r *memUsers) UpdateActive(_ context.Context, id string, active bool) (*domain.User, error) {
	return r.update(id, func(u *domain.User) { u.IsActive = active })
}

func (r *memUsers) List(_ context.Context, page ports.Page) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := []*domain.User{}
	for i, id := range ids {
		if i < page.Skip || len(out) >= page.Limit {
			continue
		}
		u := r.byID[id]
		out = append(out, &u)
	}
	return out, nil
}

type memPosts struct {
	mu   sync.Mutex
	byID map[string]domain.Post
	seq  int
}

func newMemPosts() *memPosts { return &memPosts{byID: map[string]domain.Post{}} }

func (r *memPosts) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *p
	stored.ID = fmt.Sprintf("post-%03d", r.seq)
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *memPosts) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

func (r *memPosts) List(_ context.Context, page ports.Page) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Post{}
	for _, p := range r.byID {
		if len(out) < page.Limit {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *memPosts) Update(_ context.Context, id string, patch ports.PostPatch) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Summary != nil {
		p.Summary = *patch.Summary
	}
	r.byID[id] = p
	return &p, nil
}

func (r *memPosts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.byID, id)
	return nil
}

type memComments struct {
	mu   sync.Mutex
	byID map[string]domain.Comment
	seq  int
}

func newMemComments() *memComments { return &memComments{byID: map[string]domain.Comment{}} }

func (r *memComments) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *c
	stored.ID = fmt.Sprintf("comment-%03d", r.seq)
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *memComments) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return &c, nil
}

func (r *memComments) ListByPost(_ context.Context, postID string, _ ports.Page) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Comment{}
	for _, c := range r.byID {
		if c.PostID == postID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memComments) UpdateContent(_ context.Context, id, content string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Content = content
	r.byID[id] = c
	return &c, nil
}

func (r *memComments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memComments) DeleteByPost(_ context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.byID {
		if c.PostID == postID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
