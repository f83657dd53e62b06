package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/leon37/socializer/internal/apperr"
	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/model"
	"github.com/leon37/socializer/internal/repository"
)

const maxDescriptionLen = 500

type PostService struct {
	posts  repository.PostRepo
	users  repository.UserRepo
	images imagestore.Provider
}

func NewPostService(posts repository.PostRepo, users repository.UserRepo, images imagestore.Provider) *PostService {
	return &PostService{posts: posts, users: users, images: images}
}

// Create 发帖：文字和图至少要有一个。创建时把作者昵称/头像冷拷贝到帖子上，
// 之后作者改资料不回写 (产品决定，信息流展示的是发帖当时的样子)
func (s *PostService) Create(ctx context.Context, userID, description string, avatar *multipart.FileHeader) (*model.Post, error) {
	if description == "" && avatar == nil {
		return nil, apperr.Validation("Post must have some photo or description")
	}
	if len([]rune(description)) > maxDescriptionLen {
		return nil, apperr.Validation("Description cannot exceed 500 characters")
	}
	if avatar != nil && !validImageType(avatar) {
		return nil, apperr.Validation("The picture format must be PNG, JPEG, AVIF, WEBP")
	}

	creator, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	var uploaded *model.Avatar
	if avatar != nil {
		img, err := uploadImage(ctx, s.images, avatar)
		if err != nil {
			return nil, err
		}
		uploaded = &img
	}

	id, _ := uuid.NewV7()
	post := &model.Post{
		ID:            id.String(),
		Description:   description,
		Avatar:        uploaded,
		CreatedBy:     creator.ID,
		CreatorName:   creator.Name,
		CreatorAvatar: creator.Avatar.URL,
		CreatedAt:     time.Now(),
		Likes:         []string{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update 改帖子：description 用指针区分"没传"和"传了空串"。
// 注意这里没有归属校验，任何登录用户都能改任何帖子 (现状如此，产品层面待定)
func (s *PostService) Update(ctx context.Context, postID string, description *string, avatar *multipart.FileHeader) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}

	if avatar != nil {
		if !validImageType(avatar) {
			return nil, apperr.Validation("The picture format must be PNG, JPEG, AVIF, WEBP")
		}
		uploaded, err := uploadImage(ctx, s.images, avatar)
		if err != nil {
			return nil, err
		}
		// 旧图 best-effort 删除，失败只记日志
		if post.Avatar != nil && post.Avatar.PublicID != "" {
			if err := s.images.Delete(ctx, post.Avatar.PublicID); err != nil {
				slog.Error("删除旧帖子配图失败", "public_id", post.Avatar.PublicID, "error", err)
			}
		}
		post.Avatar = &uploaded
	}

	if description != nil {
		if len([]rune(*description)) > maxDescriptionLen {
			return nil, apperr.Validation("Description cannot exceed 500 characters")
		}
		post.Description = *description
	}

	// 改完不能变成既没字也没图
	if post.Description == "" && post.Avatar == nil {
		return nil, apperr.Validation("Post must have some photo or description")
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删帖，配图 best-effort 删除
func (s *PostService) Delete(ctx context.Context, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Post not found")
	}
	if err != nil {
		return err
	}

	if post.Avatar != nil && post.Avatar.PublicID != "" {
		if err := s.images.Delete(ctx, post.Avatar.PublicID); err != nil {
			slog.Error("删除帖子配图失败", "public_id", post.Avatar.PublicID, "error", err)
		}
	}

	return s.posts.Delete(ctx, postID)
}

// GetAll 信息流，时间倒序全量返回
func (s *PostService) GetAll(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Post does not exist")
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Like 点赞。重复点赞明确报 400，不做静默幂等
func (s *PostService) Like(ctx context.Context, postID, userID string) ([]string, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}

	if post.Liked(userID) {
		return nil, apperr.Conflict("Post already liked")
	}

	post.Likes = append(post.Likes, userID)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike 取消点赞。没点过也明确报 400
func (s *PostService) Unlike(ctx context.Context, postID, userID string) ([]string, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}

	if !post.Liked(userID) {
		return nil, apperr.Conflict("Post not liked")
	}

	likes := make([]string, 0, len(post.Likes))
	for _, id := range post.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	post.Likes = likes
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// ListByUser 某个用户发过的所有帖子
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}
