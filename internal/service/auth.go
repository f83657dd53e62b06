package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leon37/socializer/internal/apperr"
	"github.com/leon37/socializer/internal/config"
	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/model"
	"github.com/leon37/socializer/internal/repository"
)

const minRegisterAge = 16

type AuthService struct {
	users  repository.UserRepo
	images imagestore.Provider
	jwtCfg config.JWTConfig
}

func NewAuthService(users repository.UserRepo, images imagestore.Provider, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{users: users, images: images, jwtCfg: jwtCfg}
}

// RegisterInput 注册参数 (DTO)，字段级校验在 Controller 的 binding 做完了
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Gender   string
	DOB      time.Time
}

// Register 注册逻辑：校验头像和年龄 → 查重 → 上传头像 → 密码加密落库 → 发 Token
func (s *AuthService) Register(ctx context.Context, input RegisterInput, avatar *multipart.FileHeader) (*model.User, string, error) {
	if avatar == nil {
		return nil, "", apperr.Validation("User avatar required")
	}
	if !validImageType(avatar) {
		return nil, "", apperr.Validation("The avatar format must be PNG, JPEG, AVIF, WEBP")
	}
	if ageAt(input.DOB, time.Now()) < minRegisterAge {
		return nil, "", apperr.Validation("User must be at least 16 years old")
	}

	// 邮箱查重，DB 的 Unique Index 兜底并发漏网的
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", apperr.Conflict("User already Registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	uploaded, err := uploadImage(ctx, s.images, avatar)
	if err != nil {
		return nil, "", err
	}

	// 密码加密 (DefaultCost = 10)
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	id, _ := uuid.NewV7()
	user := &model.User{
		ID:        id.String(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hash),
		Gender:    input.Gender,
		DOB:       input.DOB,
		Avatar:    uploaded,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 登录逻辑，返回用户和 Token
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// 查无此人和密码错误报同一句话，不给撞库的人提示
		return nil, "", apperr.Auth("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.Auth("Invalid email or password")
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate 校验 Token 并把用户查出来，给鉴权中间件用
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	if tokenString == "" {
		return nil, apperr.Auth("User is not authenticated")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Auth("User is not authenticated")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Auth("User is not authenticated")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperr.Auth("User is not authenticated")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Auth("User is not authenticated")
	}
	return user, nil
}

func (s *AuthService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * time.Duration(s.jwtCfg.ExpireHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

// ageAt 按整年算年龄，生日当天算满岁
func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	return years
}
