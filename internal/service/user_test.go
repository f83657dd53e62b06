package service

import (
	"context"
	"testing"

	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/repository"
)

func newUserFixture(t *testing.T) (*UserService, *AuthService, *imagestore.MemoryStore) {
	t.Helper()
	users := repository.NewMemoryUserRepo()
	store := imagestore.NewMemoryStore()
	return NewUserService(users, store), NewAuthService(users, store, testJWT), store
}

func TestUpdateProfileRequiresNameAndEmail(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)
	ctx := context.Background()

	user, _, err := authSvc.Register(ctx, validRegisterInput("a@x.com"), pngAvatar(t))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := userSvc.UpdateProfile(ctx, user.ID, "", "a@x.com", nil); err == nil {
		t.Fatal("missing name accepted")
	}
	if _, err := userSvc.UpdateProfile(ctx, user.ID, "Alice", "", nil); err == nil {
		t.Fatal("missing email accepted")
	}
}

func TestUpdateProfileKeepsAvatarWhenNoFile(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)
	ctx := context.Background()

	user, _, err := authSvc.Register(ctx, validRegisterInput("a@x.com"), pngAvatar(t))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	original := user.Avatar

	// 只改昵称和邮箱，不传头像文件
	updated, err := userSvc.UpdateProfile(ctx, user.ID, "Alicia", "new@x.com", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alicia" || updated.Email != "new@x.com" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.Avatar != original {
		t.Fatalf("avatar changed without a file: %+v", updated.Avatar)
	}
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	userSvc, authSvc, store := newUserFixture(t)
	ctx := context.Background()

	user, _, err := authSvc.Register(ctx, validRegisterInput("a@x.com"), pngAvatar(t))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	oldID := user.Avatar.PublicID

	newFile := makeFileHeader(t, "new.png", "image/png", []byte("new-avatar"))
	updated, err := userSvc.UpdateProfile(ctx, user.ID, "Alice", "a@x.com", newFile)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Avatar.PublicID == oldID {
		t.Fatal("avatar not replaced")
	}
	if store.Has(oldID) {
		t.Fatal("old avatar image still stored")
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)
	ctx := context.Background()

	alice, _, err := authSvc.Register(ctx, validRegisterInput("a@x.com"), pngAvatar(t))
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	bobInput := validRegisterInput("b@x.com")
	bobInput.Name = "Bob"
	if _, _, err := authSvc.Register(ctx, bobInput, pngAvatar(t)); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	// Alice 想占用 Bob 的邮箱
	if _, err := userSvc.UpdateProfile(ctx, alice.ID, "Alice", "b@x.com", nil); err == nil {
		t.Fatal("email takeover accepted")
	}
}

func TestListUsers(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if _, _, err := authSvc.Register(ctx, validRegisterInput(email), pngAvatar(t)); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	users, err := userSvc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}
