package routes

import (
	authapi "verrocchio-backend/internal/api/auth"
	convoapi "verrocchio-backend/internal/api/conversations"
	notifapi "verrocchio-backend/internal/api/notifications"
	postsapi "verrocchio-backend/internal/api/posts"
	requestsapi "verrocchio-backend/internal/api/requests"
	usersapi "verrocchio-backend/internal/api/users"
	"verrocchio-backend/internal/app/http/middleware"
	"verrocchio-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/auth/register", authapi.Register)
	public.POST("/auth/login", authapi.Login)
	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/users/artists", usersapi.SearchArtists)
	public.GET("/users/artists/:id", usersapi.GetArtist)

	public.GET("/posts", postsapi.ListPosts)
	public.GET("/posts/:id", postsapi.GetPost)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	auth.GET("/auth/me", authapi.Me)

	auth.GET("/users/me", usersapi.GetMe)
	auth.PUT("/users/me", usersapi.UpdateMe)
	auth.POST("/users/me/slides", usersapi.AddSlide)
	auth.DELETE("/users/me/slides/:id", usersapi.DeleteSlide)

	auth.GET("/conversations", convoapi.ListConversations)
	auth.POST("/conversations", convoapi.StartConversation)
	auth.GET("/conversations/:id/messages", convoapi.ListMessages)
	auth.POST("/conversations/:id/messages", convoapi.SendMessage)

	auth.GET("/notifications", notifapi.ListNotifications)
	auth.POST("/notifications", notifapi.CreateNotification)
	auth.POST("/notifications/:id/read", notifapi.MarkRead)
	auth.POST("/notifications/read-all", notifapi.MarkAllRead)

	auth.GET("/requests", requestsapi.ListOpenRequests)
	auth.GET("/requests/mine", requestsapi.ListMyRequests)
	auth.PUT("/requests/:id", requestsapi.UpdateRequest)
	auth.DELETE("/requests/:id", requestsapi.DeleteRequest)

	auth.POST("/posts", postsapi.CreatePost)
	auth.POST("/posts/:id/like", postsapi.LikePost)
	auth.DELETE("/posts/:id/like", postsapi.UnlikePost)

	// Role-guarded
	buyers := auth.Group("/")
	buyers.Use(middleware.RequireRole(users.RoleBuyer))
	buyers.POST("/requests", requestsapi.CreateRequest)

	artists := auth.Group("/")
	artists.Use(middleware.RequireRole(users.RoleArtist))
	artists.POST("/requests/:id/interest", requestsapi.ExpressInterest)
}
