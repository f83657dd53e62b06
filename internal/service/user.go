package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/leon37/socializer/internal/apperr"
	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/model"
	"github.com/leon37/socializer/internal/repository"
)

type UserService struct {
	users  repository.UserRepo
	images imagestore.Provider
}

func NewUserService(users repository.UserRepo, images imagestore.Provider) *UserService {
	return &UserService{users: users, images: images}
}

// Profile 查当前用户资料 (密码哈希在 model 里 json:"-"，序列化不出去)
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile 更新昵称/邮箱，头像文件可选：传了就换图，没传保留旧头像
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email string, avatar *multipart.FileHeader) (*model.User, error) {
	if name == "" {
		return nil, apperr.Validation("Name is required")
	}
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	// 换邮箱要重新查重
	if email != user.Email {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return nil, apperr.Conflict("User already Registered")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if avatar != nil {
		if !validImageType(avatar) {
			return nil, apperr.Validation("The avatar format must be PNG, JPEG, AVIF, WEBP")
		}
		uploaded, err := uploadImage(ctx, s.images, avatar)
		if err != nil {
			return nil, err
		}
		// 旧图删除是 best-effort：删失败记日志，不影响本次更新
		if old := user.Avatar.PublicID; old != "" {
			if err := s.images.Delete(ctx, old); err != nil {
				slog.Error("删除旧头像失败", "public_id", old, "error", err)
			}
		}
		user.Avatar = uploaded
	}

	user.Name = name
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List 拉全量用户列表 (没有分页，产品就这么定的)
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
