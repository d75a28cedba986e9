package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/inkandpages/blog-service/internal/service"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "PUT", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/sitemap.xml", h.sitemap)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.authLogin)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGetPublished)
			posts.GET("/archive", h.postsGetArchive)
			posts.GET("/search", h.postsSearch)
			posts.GET("/tag/:tag", h.postsGetByTag)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.GET("/seo", h.postsStructuredData)
			}
		}

		writer := v1.Group("/writer", h.writerMiddleware)
		{
			writer.GET("/posts", h.writerGetPosts)
			writer.POST("/posts", h.writerCreatePost)
			writer.PATCH("/posts/:postID", h.writerEditPost)
			writer.DELETE("/posts/:postID", h.writerDeletePost)

			writer.GET("/posts/:postID/draft", h.writerGetDraft)
			writer.PUT("/posts/:postID/draft", h.writerSaveDraft)
			writer.DELETE("/posts/:postID/draft", h.writerClearDraft)

			writer.POST("/images", h.writerUploadImage)
			writer.POST("/migrate", h.writerMigrate)
			writer.DELETE("/posts", h.writerClearPosts)
		}
	}

	return r
}

func (h *Handler) isWriterRequest(c *gin.Context) bool {
	v, ok := c.Get("is-writer")
	if !ok {
		return false
	}
	isWriter, _ := v.(bool)
	return isWriter
}
