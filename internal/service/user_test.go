package service

import (
	"context"
	"errors"
	"testing"

	"github.com/seongmin/studyhub/internal/apperror"
)

func TestUserCreate_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create(context.Background(), "kakao", "12345", "minsu", "minsu@example.com", "https://img.example.com/p.png", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The id is the provider concatenated with the provider-assigned id.
	if user.ID != "kakao12345" {
		t.Errorf("ID = %q, want %q", user.ID, "kakao12345")
	}
	if user.Nickname != "minsu" {
		t.Errorf("Nickname = %q, want %q", user.Nickname, "minsu")
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	svc, repo := newTestUserService(t)

	if _, err := svc.Create(context.Background(), "kakao", "1", "a", "same@example.com", "", false); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), "google", "2", "b", "same@example.com", "", false)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	// The conflicting create must not have written anything.
	if len(repo.users) != 1 {
		t.Errorf("stored users = %d, want 1", len(repo.users))
	}
}

func TestUserCreate_MissingProvider(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Create(context.Background(), "  ", "12345", "minsu", "m@example.com", "", false)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.GetByID(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdate(t *testing.T) {
	svc, _ := newTestUserService(t)

	created, err := svc.Create(context.Background(), "kakao", "1", "old", "old@example.com", "", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, "new", "new@example.com", "https://img.example.com/new.png", true)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Nickname != "new" || updated.Email != "new@example.com" || !updated.IsPremium {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Update(context.Background(), "ghost", "n", "e@example.com", "", false)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUserDelete_ReturnsDeleted(t *testing.T) {
	svc, _ := newTestUserService(t)

	created, _ := svc.Create(context.Background(), "kakao", "1", "bye", "bye@example.com", "", false)

	deleted, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("deleted.ID = %q, want %q", deleted.ID, created.ID)
	}

	_, err = svc.GetByID(context.Background(), created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}
}
