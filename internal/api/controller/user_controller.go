package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leon37/socializer/internal/api/middleware"
	"github.com/leon37/socializer/internal/api/response"
	"github.com/leon37/socializer/internal/config"
	"github.com/leon37/socializer/internal/service"
)

// UserController 处理注册/登录和用户资料
type UserController struct {
	authService *service.AuthService
	userService *service.UserService
	jwtCfg      config.JWTConfig
}

// NewUserController 构造函数
func NewUserController(authService *service.AuthService, userService *service.UserService, jwtCfg config.JWTConfig) *UserController {
	return &UserController{
		authService: authService,
		userService: userService,
		jwtCfg:      jwtCfg,
	}
}

// ==========================================
// DTOs (请求/响应参数定义)
// ==========================================

type RegisterRequest struct {
	Name     string `form:"name" binding:"required,min=3,max=20"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8,max=32"`
	Gender   string `form:"gender" binding:"required,oneof=Male Female"`
	DOB      string `form:"dob" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ==========================================
// Handlers
// ==========================================

// Register 用户注册
// @Summary 用户注册
// @Description multipart 表单：基本信息 + avatar 头像文件，成功后直接登录态
// @Tags User
// @Accept mpfm
// @Produce json
// @Param avatar formData file true "头像文件 (PNG/JPEG/AVIF/WEBP)"
// @Success 200 {object} map[string]any "{success, message, user, token}"
// @Failure 400 {object} map[string]any
// @Router /user/registerUser [post]
func (ctrl *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("Register params invalid", "err", err)
		response.Error(c, http.StatusBadRequest, "Please fill all the fields")
		return
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Provide a valid date of birth")
		return
	}

	// 头像可以不在表单里，缺失的报错交给 Service 统一给
	avatar, _ := c.FormFile("avatar")

	input := service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		DOB:      dob,
	}
	user, token, err := ctrl.authService.Register(c.Request.Context(), input, avatar)
	if err != nil {
		slog.Warn("Register failed", "email", req.Email, "err", err)
		response.HandleError(c, err)
		return
	}

	slog.Info("User registered", "email", req.Email, "userID", user.ID)
	ctrl.sendToken(c, http.StatusOK, "User registered successfully", token, gin.H{"user": user})
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验邮箱密码，颁发 JWT (Cookie + body 双通道)
// @Tags User
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录参数"
// @Success 200 {object} map[string]any "{success, message, user, token}"
// @Router /user/loginUser [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please fill all the fields")
		return
	}

	user, token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// 提示信息模糊化，防撞库
		slog.Warn("Login failed", "email", req.Email)
		response.HandleError(c, err)
		return
	}

	slog.Info("User logged in", "userID", user.ID)
	ctrl.sendToken(c, http.StatusOK, "User Logged in successfully!", token, gin.H{"user": user})
}

// Logout 退出登录
// @Summary 退出登录
// @Description 服务端无状态，只负责让 Cookie 过期
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /user/logoutUser [get]
func (ctrl *UserController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, "User Logged Out!", nil)
}

// Profile 当前用户资料
// @Summary 当前用户资料
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "{success, message, user}"
// @Router /user/currentUserProfile [get]
func (ctrl *UserController) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, "User Information is given below", gin.H{"user": user})
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Description name/email 必填，avatar 文件可选 (不传保留旧头像)
// @Tags User
// @Accept mpfm
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "{success, message, user}"
// @Router /user/updateUserProfile [patch]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// 这里不用 binding，要逐字段给出和前端约定好的报错文案
	name := c.PostForm("name")
	email := c.PostForm("email")
	avatar, _ := c.FormFile("avatar")

	updated, err := ctrl.userService.UpdateProfile(c.Request.Context(), user.ID, name, email, avatar)
	if err != nil {
		slog.Warn("UpdateProfile failed", "userID", user.ID, "err", err)
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User profile updated successfully", gin.H{"user": updated})
}

// GetAllUsers 用户列表
// @Summary 用户列表
// @Tags User
// @Produce json
// @Success 200 {object} map[string]any "{success, message, users}"
// @Router /user/getAllUsers [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.userService.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User Information is given below", gin.H{"users": users})
}

// sendToken 写 httpOnly Cookie，并把 token 回显到 body 里给走 Header 的客户端
func (ctrl *UserController) sendToken(c *gin.Context, status int, message, token string, payload gin.H) {
	maxAge := ctrl.jwtCfg.CookieDays * 24 * int(time.Hour.Seconds())
	c.SetCookie("token", token, maxAge, "/", "", false, true)

	payload["token"] = token
	response.Success(c, status, message, payload)
}

// parseDOB 前端可能传纯日期，也可能传完整时间戳
func parseDOB(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
