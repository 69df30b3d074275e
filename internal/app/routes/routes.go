package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/znurfzh/ethic-sub000/internal/app/controllers"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
	"github.com/znurfzh/ethic-sub000/internal/pkg/websocket"
)

// Controllers bundles every HTTP handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Post         *controllers.PostController
	Topic        *controllers.TopicController
	Event        *controllers.EventController
	Connection   *controllers.ConnectionController
	Notification *controllers.NotificationController
	Search       *controllers.SearchController
	LearningPath *controllers.LearningPathController
	WebSocket    *websocket.Handler
}

// SetupRouter configures all application routes.
// authLimit guards the credential endpoints.
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authLimit gin.HandlerFunc,
) {
	api := router.Group("/api")

	api.GET("/health", controllers.Health)

	// --- Public Auth routes ---
	api.POST("/register", authLimit, ctrl.Auth.Register)
	api.POST("/login", authLimit, ctrl.Auth.Login)

	// --- Public read routes ---
	posts := api.Group("/posts")
	{
		posts.GET("", ctrl.Post.ListPosts)
		posts.GET("/:postId", ctrl.Post.GetPost)
		posts.GET("/:postId/topics", ctrl.Post.GetPostTopics)
		posts.GET("/:postId/resources", ctrl.Post.GetPostResources)
		posts.GET("/:postId/comments", ctrl.Post.ListComments)
		posts.GET("/:postId/likes", ctrl.Post.ListLikes)
	}

	topics := api.Group("/topics")
	{
		topics.GET("", ctrl.Topic.ListTopics)
		topics.GET("/:id/posts", ctrl.Topic.GetTopicPosts)
	}

	events := api.Group("/events")
	{
		events.GET("", ctrl.Event.ListEvents)
		events.GET("/:id", ctrl.Event.GetEvent)
	}

	users := api.Group("/users")
	{
		users.GET("", ctrl.User.ListUsers)
		users.GET("/:id", ctrl.User.GetUserByID)
		users.GET("/:id/posts", ctrl.User.GetUserPosts)
	}

	learningPaths := api.Group("/learning-paths")
	{
		learningPaths.GET("", ctrl.LearningPath.ListLearningPaths)
		learningPaths.GET("/:id", ctrl.LearningPath.GetLearningPath)
	}

	api.GET("/search", ctrl.Search.Search)

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/logout", ctrl.Auth.Logout)
		authenticated.GET("/user", ctrl.Auth.CurrentUser)

		authenticated.POST("/posts", ctrl.Post.CreatePost)
		authenticated.POST("/posts/:postId/comments", ctrl.Post.CreateComment)
		authenticated.POST("/posts/:postId/likes", ctrl.Post.LikePost)
		authenticated.DELETE("/posts/:postId/likes", ctrl.Post.UnlikePost)
		authenticated.POST("/posts/:postId/bookmarks", ctrl.Post.BookmarkPost)
		authenticated.DELETE("/posts/:postId/bookmarks", ctrl.Post.RemoveBookmark)
		authenticated.GET("/bookmarks", ctrl.Post.ListBookmarks)

		authenticated.POST("/topics", ctrl.Topic.CreateTopic)
		authenticated.POST("/events", ctrl.Event.CreateEvent)

		authenticated.GET("/connections", ctrl.Connection.ListConnections)
		authenticated.POST("/connections", ctrl.Connection.CreateConnection)
		authenticated.PUT("/connections/:id", ctrl.Connection.UpdateConnection)

		authenticated.GET("/notifications", ctrl.Notification.ListNotifications)
		authenticated.PUT("/notifications/:id/read", ctrl.Notification.MarkAsRead)
		authenticated.GET("/notifications/ws", ctrl.WebSocket.HandleConnection)

		authenticated.PUT("/users/:id", ctrl.User.UpdateUser)
		authenticated.GET("/users/:id/learning-progress/:pathId", ctrl.LearningPath.GetProgress)
		authenticated.POST("/users/:id/learning-progress/:pathId/steps/:stepId", ctrl.LearningPath.UpdateStepProgress)

		authenticated.POST("/learning-paths", ctrl.LearningPath.CreateLearningPath)
		authenticated.POST("/learning-paths/:id/steps", ctrl.LearningPath.AddStep)
	}
}
