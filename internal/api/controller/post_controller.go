package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leon37/socializer/internal/api/middleware"
	"github.com/leon37/socializer/internal/api/response"
	"github.com/leon37/socializer/internal/service"
)

// PostController 处理帖子 CRUD 和点赞
type PostController struct {
	postService *service.PostService
}

// NewPostController 构造函数
func NewPostController(postService *service.PostService) *PostController {
	return &PostController{postService: postService}
}

// Create 发帖
// @Summary 发帖
// @Description multipart 表单：description 和 avatar 配图至少给一个
// @Tags Post
// @Accept mpfm
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]any "{success, post}"
// @Failure 400 {object} map[string]any
// @Router /post/createPost [post]
func (ctrl *PostController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	description := c.PostForm("description")
	avatar, _ := c.FormFile("avatar")

	post, err := ctrl.postService.Create(c.Request.Context(), user.ID, description, avatar)
	if err != nil {
		slog.Warn("Create post failed", "userID", user.ID, "err", err)
		response.HandleError(c, err)
		return
	}

	slog.Info("Post created", "postID", post.ID, "userID", user.ID)
	response.Success(c, http.StatusCreated, "", gin.H{"post": post})
}

// Update 改帖子
// @Summary 改帖子
// @Description 改文案和/或换配图；换图会尽力删掉旧图
// @Tags Post
// @Accept mpfm
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} map[string]any "{success, message, post}"
// @Router /post/updatePost/{id} [put]
func (ctrl *PostController) Update(c *gin.Context) {
	id := c.Param("id")

	// GetPostForm 区分"没传 description"和"传了空串"
	var description *string
	if v, ok := c.GetPostForm("description"); ok {
		description = &v
	}
	avatar, _ := c.FormFile("avatar")

	post, err := ctrl.postService.Update(c.Request.Context(), id, description, avatar)
	if err != nil {
		slog.Warn("Update post failed", "postID", id, "err", err)
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated", gin.H{"post": post})
}

// Delete 删帖
// @Summary 删帖
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} map[string]any
// @Router /post/deletePost/{id} [delete]
func (ctrl *PostController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.postService.Delete(c.Request.Context(), id); err != nil {
		slog.Warn("Delete post failed", "postID", id, "err", err)
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Post deleted successfully", nil)
}

// GetAll 信息流
// @Summary 信息流
// @Description 全量帖子，时间倒序，没有分页
// @Tags Post
// @Produce json
// @Success 200 {object} map[string]any "{success, count, posts}"
// @Router /post/getAllPosts [get]
func (ctrl *PostController) GetAll(c *gin.Context) {
	posts, err := ctrl.postService.GetAll(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"count": len(posts), "posts": posts})
}

// GetSingle 单帖详情
// @Summary 单帖详情
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} map[string]any "{success, message, post}"
// @Failure 404 {object} map[string]any
// @Router /post/getSinglePost/{id} [get]
func (ctrl *PostController) GetSingle(c *gin.Context) {
	post, err := ctrl.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Post found", gin.H{"post": post})
}

// Like 点赞
// @Summary 点赞
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} map[string]any "{success, message, likes}"
// @Failure 400 {object} map[string]any "重复点赞"
// @Router /post/like/{id} [put]
func (ctrl *PostController) Like(c *gin.Context) {
	user := middleware.CurrentUser(c)
	likes, err := ctrl.postService.Like(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Post liked successfully", gin.H{"likes": likes})
}

// Unlike 取消点赞
// @Summary 取消点赞
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Success 200 {object} map[string]any "{success, message, likes}"
// @Failure 400 {object} map[string]any "本来就没点过"
// @Router /post/unlike/{id} [delete]
func (ctrl *PostController) Unlike(c *gin.Context) {
	user := middleware.CurrentUser(c)
	likes, err := ctrl.postService.Unlike(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Post unliked successfully", gin.H{"likes": likes})
}

// GetUserPosts 当前用户的全部帖子
// @Summary 当前用户的全部帖子
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "{success, message, posts}"
// @Router /post/getAllUserPosts [get]
func (ctrl *PostController) GetUserPosts(c *gin.Context) {
	user := middleware.CurrentUser(c)
	posts, err := ctrl.postService.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Post fetched", gin.H{"posts": posts})
}
