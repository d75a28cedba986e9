package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/internal/seo"
)

func (h *Handler) postsGetPublished(c *gin.Context) {
	posts := h.services.Post.GetPublishedPosts(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewPostMetadataList(posts))
}

// The archive is the full published history, same data as the home feed but
// without the content bodies trimmed differently; the client groups by year.
func (h *Handler) postsGetArchive(c *gin.Context) {
	posts := h.services.Post.GetPublishedPosts(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewPostMetadataList(posts))
}

func (h *Handler) postsGetByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	post := h.services.Post.GetPostByID(c.Request.Context(), id)
	if post == nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errPostNotFound.Error()))
		return
	}

	// An unpublished post is indistinguishable from a missing one for
	// anyone but the writer.
	if !post.Published && !h.isWriterRequest(c) {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errPostNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewGetPost(post))
}

func (h *Handler) postsGetByTag(c *gin.Context) {
	tag := strings.TrimSpace(c.Param("tag"))
	posts := h.services.Post.GetPostsByTag(c.Request.Context(), tag)
	c.JSON(http.StatusOK, dto.NewPostMetadataList(posts))
}

func (h *Handler) postsSearch(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errMissingSearchQuery.Error()))
		return
	}

	posts := h.services.Post.SearchPosts(c.Request.Context(), term)
	c.JSON(http.StatusOK, dto.NewPostMetadataList(posts))
}

func (h *Handler) postsStructuredData(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	post := h.services.Post.GetPostByID(c.Request.Context(), id)
	if post == nil || !post.Published {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errPostNotFound.Error()))
		return
	}

	data := seo.StructuredData(viper.GetString("site.base_url"), viper.GetString("site.name"), post)
	c.JSON(http.StatusOK, data)
}

func (h *Handler) sitemap(c *gin.Context) {
	posts := h.services.Post.GetPublishedPosts(c.Request.Context())

	body, err := seo.BuildSitemap(viper.GetString("site.base_url"), posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
