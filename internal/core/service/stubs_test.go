package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Hashers
// ---------------------------------------------------------------------------

// syncHasher runs BcryptHasher on the calling goroutine. Like the hashing
// pool, it refuses work for a cancelled context.
type syncHasher struct {
	inner          *BcryptHasher
	hashErr        error // if set, Hash returns this error
	hashCalls      int
	verifyCalls    int
	lastVerifyHash string
}

func newSyncHasher() *syncHasher {
	return &syncHasher{inner: NewBcryptHasher(bcrypt.MinCost)}
}

func (h *syncHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return h.inner.Hash(plaintext)
}

func (h *syncHasher) Verify(ctx context.Context, plaintext, hash string) bool {
	h.verifyCalls++
	h.lastVerifyHash = hash
	if ctx.Err() != nil {
		return false
	}
	return h.inner.Verify(plaintext, hash)
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error // if set, Create returns this error
	findErr   error // if set, every Find* returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.nextID++
	c := cloneUser(u)
	if c.ID == "" {
		c.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.byID[c.ID] = c
	return cloneUser(c)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create mirrors the unique indexes of the real store.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateActive(_ context.Context, id string, active bool) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.Page) ([]*domain.User, error) {
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
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Posts and comments
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	byID     map[string]*domain.Post
	nextID   int
	writes   int // successful Create/Update/Delete calls
	lastPage ports.Page
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{byID: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.nextID++
	clone := *p
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("p%d", r.nextID)
	}
	r.byID[clone.ID] = &clone
	r.writes++
	out := clone
	return &out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) List(_ context.Context, page ports.Page) ([]*domain.Post, error) {
	r.lastPage = page
	out := []*domain.Post{}
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, patch ports.PostPatch) (*domain.Post, error) {
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
	p.UpdatedAt = time.Now().UTC()
	r.writes++
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.byID, id)
	r.writes++
	return nil
}

type stubCommentRepo struct {
	byID      map[string]*domain.Comment
	nextID    int
	writes    int
	deleteErr error // if set, DeleteByPost returns this error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	clone := *c
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("c%d", r.nextID)
	}
	r.byID[clone.ID] = &clone
	r.writes++
	out := clone
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByPost(_ context.Context, postID string, _ ports.Page) ([]*domain.Comment, error) {
	out := []*domain.Comment{}
	for _, c := range r.byID {
		if c.PostID == postID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) UpdateContent(_ context.Context, id, content string) (*domain.Comment, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Content = content
	r.writes++
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.byID, id)
	r.writes++
	return nil
}

func (r *stubCommentRepo) DeleteByPost(_ context.Context, postID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for id, c := range r.byID {
		if c.PostID == postID {
			delete(r.byID, id)
			n++
		}
	}
	r.writes++
	return n, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func mustTokenService(secret string) *TokenService {
	svc, err := NewTokenService(TokenConfig{Secret: []byte(secret), Algorithm: "HS256", TTL: 30 * time.Minute})
	if err != nil {
		panic(err)
	}
	return svc
}

var (
	alice = &domain.User{ID: "u-alice", Username: "alice", Email: "a@x.com", Role: domain.RoleUser, IsActive: true}
	bob   = &domain.User{ID: "u-bob", Username: "bob", Email: "b@x.com", Role: domain.RoleUser, IsActive: true}
	admin = &domain.User{ID: "u-admin", Username: "root", Email: "root@x.com", Role: domain.RoleAdmin, IsActive: true}
)
