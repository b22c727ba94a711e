package service

import (
	"context"
	"errors"
	"testing"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

func newTestUserAdminService() (*UserAdminService, *stubUserRepo) {
	repo := newStubUserRepo()
	repo.add(alice)
	repo.add(bob)
	repo.add(admin)
	guard, _ := newTestGuard(repo)
	return NewUserAdminService(repo, guard, discardLogger), repo
}

func TestUserAdminService_List(t *testing.T) {
	svc, _ := newTestUserAdminService()

	if _, err := svc.List(context.Background(), alice, ports.Page{}); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	users, err := svc.List(context.Background(), admin, ports.Page{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}

func TestUserAdminService_UpdateRole(t *testing.T) {
	svc, repo := newTestUserAdminService()

	if _, err := svc.UpdateRole(context.Background(), alice, bob.ID, domain.RoleAdmin); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if repo.byID[bob.ID].Role != domain.RoleUser {
		t.Fatalf("role changed despite denial")
	}

	u, err := svc.UpdateRole(context.Background(), admin, bob.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", u.Role)
	}

	if _, err := svc.UpdateRole(context.Background(), admin, bob.ID, domain.Role("superuser")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), admin, "missing", domain.RoleUser); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserAdminService_CannotDemoteOrDeactivateSelf(t *testing.T) {
	svc, _ := newTestUserAdminService()

	if _, err := svc.UpdateRole(context.Background(), admin, admin.ID, domain.RoleUser); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.UpdateActive(context.Background(), admin, admin.ID, false); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestUserAdminService_UpdateActive(t *testing.T) {
	svc, repo := newTestUserAdminService()

	if _, err := svc.UpdateActive(context.Background(), bob, alice.ID, false); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	u, err := svc.UpdateActive(context.Background(), admin, alice.ID, false)
	if err != nil {
		t.Fatalf("UpdateActive returned error: %v", err)
	}
	if u.IsActive || repo.byID[alice.ID].IsActive {
		t.Fatalf("expected alice deactivated")
	}
}
