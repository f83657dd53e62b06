package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/leon37/socializer/internal/apperr"
	"github.com/leon37/socializer/internal/config"
	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/repository"
)

var testJWT = config.JWTConfig{Secret: "test-secret", ExpireHours: 1, CookieDays: 1}

// makeFileHeader 在内存里拼一个 multipart 文件，测上传逻辑用
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["avatar"][0]
}

func pngAvatar(t *testing.T) *multipart.FileHeader {
	return makeFileHeader(t, "avatar.png", "image/png", []byte("not-a-real-png"))
}

func validRegisterInput(email string) RegisterInput {
	return RegisterInput{
		Name:     "Alice",
		Email:    email,
		Password: "password123",
		Gender:   "Female",
		DOB:      time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newAuthFixture() (*AuthService, *repository.MemoryUserRepo, *imagestore.MemoryStore) {
	users := repository.NewMemoryUserRepo()
	store := imagestore.NewMemoryStore()
	return NewAuthService(users, store, testJWT), users, store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, validRegisterInput("a@x.com"), pngAvatar(t))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || token == "" {
		t.Fatalf("expected user id and token, got %q / %q", user.ID, token)
	}
	if user.Avatar.PublicID == "" || user.Avatar.URL == "" {
		t.Fatalf("expected uploaded avatar, got %+v", user.Avatar)
	}
	// 密码必须是哈希，不能明文落库
	if user.Password == "password123" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// Token 能换回同一个用户
	resolved, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("authenticate resolved %q, want %q", resolved.ID, user.ID)
	}

	// 正确密码能登录
	loggedIn, token2, err := svc.Login(ctx, "a@x.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID || token2 == "" {
		t.Fatal("login returned wrong user or empty token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	first, _, err := svc.Register(ctx, validRegisterInput("dup@x.com"), pngAvatar(t))
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	input := validRegisterInput("dup@x.com")
	input.Name = "Impostor"
	_, _, err = svc.Register(ctx, input, pngAvatar(t))

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("expected 400 conflict, got %v", err)
	}

	// 第一个用户不受影响
	stored, err := users.GetByEmail(ctx, "dup@x.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.ID != first.ID || stored.Name != "Alice" {
		t.Fatalf("first user mutated: %+v", stored)
	}
}

func TestRegisterUnderage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	input := validRegisterInput("kid@x.com")
	input.DOB = time.Now().AddDate(-15, 0, 0) // 15 岁
	_, _, err := svc.Register(context.Background(), input, pngAvatar(t))

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Status != 400 {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterAvatarRules(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	// 没有头像
	if _, _, err := svc.Register(ctx, validRegisterInput("x1@x.com"), nil); err == nil {
		t.Fatal("expected error for missing avatar")
	}

	// 不支持的格式
	gif := makeFileHeader(t, "avatar.gif", "image/gif", []byte("gif"))
	if _, _, err := svc.Register(ctx, validRegisterInput("x2@x.com"), gif); err == nil {
		t.Fatal("expected error for gif avatar")
	}

	// webp 在白名单里
	webp := makeFileHeader(t, "avatar.webp", "image/webp", []byte("webp"))
	if _, _, err := svc.Register(ctx, validRegisterInput("x3@x.com"), webp); err != nil {
		t.Fatalf("webp avatar rejected: %v", err)
	}
}

func TestLoginUniformError(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validRegisterInput("a@x.com"), pngAvatar(t)); err != nil {
		t.Fatalf("register: %v", err)
	}

	// 密码错和查无此人必须报一模一样的文案
	_, _, errWrongPass := svc.Login(ctx, "a@x.com", "wrong-password")
	_, _, errNoUser := svc.Login(ctx, "ghost@x.com", "password123")

	if errWrongPass == nil || errNoUser == nil {
		t.Fatal("expected both logins to fail")
	}
	if errWrongPass.Error() != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", errWrongPass.Error())
	}
	if errWrongPass.Error() != errNoUser.Error() {
		t.Fatalf("messages differ: %q vs %q", errWrongPass.Error(), errNoUser.Error())
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Authenticate(ctx, token); err == nil {
			t.Fatalf("token %q accepted", token)
		}
	}

	// 换了密钥签的 Token 也要拒
	other := NewAuthService(repository.NewMemoryUserRepo(), imagestore.NewMemoryStore(),
		config.JWTConfig{Secret: "other-secret", ExpireHours: 1})
	foreign, err := other.GenerateToken("some-user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, foreign); err == nil {
		t.Fatal("foreign-signed token accepted")
	}
}
