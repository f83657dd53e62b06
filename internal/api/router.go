package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leon37/socializer/docs"
	"github.com/leon37/socializer/internal/api/controller"
	"github.com/leon37/socializer/internal/api/middleware"
	"github.com/leon37/socializer/internal/service"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, authSvc *service.AuthService, userCtrl *controller.UserController, postCtrl *controller.PostController) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := middleware.Auth(authSvc)

	user := r.Group("/api/v1/user")
	{
		user.POST("/registerUser", userCtrl.Register)
		user.POST("/loginUser", userCtrl.Login)
		user.GET("/logoutUser", authed, userCtrl.Logout)
		user.GET("/currentUserProfile", authed, userCtrl.Profile)
		user.PATCH("/updateUserProfile", authed, userCtrl.UpdateProfile)
		user.GET("/getAllUsers", userCtrl.GetAllUsers)
	}

	post := r.Group("/api/v1/post")
	{
		post.POST("/createPost", authed, postCtrl.Create)
		post.PUT("/updatePost/:id", authed, postCtrl.Update)
		post.DELETE("/deletePost/:id", authed, postCtrl.Delete)
		post.GET("/getAllPosts", postCtrl.GetAll)
		post.GET("/getSinglePost/:id", authed, postCtrl.GetSingle)
		post.PUT("/like/:id", authed, postCtrl.Like)
		post.DELETE("/unlike/:id", authed, postCtrl.Unlike)
		post.GET("/getAllUserPosts", authed, postCtrl.GetUserPosts)
	}
}
