package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/internal/service"
)

func (h *Handler) writerGetPosts(c *gin.Context) {
	posts := h.services.Post.GetAllPosts(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewPostMetadataList(posts))
}

func (h *Handler) writerCreatePost(c *gin.Context) {
	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(writeErrorStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) writerEditPost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	var input dto.EditPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedPost, err := h.services.Post.Update(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(writeErrorStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, *updatedPost)
}

func (h *Handler) writerDeletePost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	if err := h.services.Post.Delete(c.Request.Context(), id); err != nil {
		c.JSON(writeErrorStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted"))
}

func (h *Handler) writerGetDraft(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	draft, err := h.services.Post.GetDraft(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, "no draft"))
		return
	}

	c.JSON(http.StatusOK, *draft)
}

func (h *Handler) writerSaveDraft(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	var input dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Post.SaveDraft(id, input); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "draft saved"))
}

func (h *Handler) writerClearDraft(c *gin.Context) {
	id := strings.TrimSpace(c.Param("postID"))

	if err := h.services.Post.ClearDraft(id); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "draft cleared"))
}

func (h *Handler) writerUploadImage(c *gin.Context) {
	file, fileHeader, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}
	defer file.Close()

	url, err := h.services.Image.Upload(c.Request.Context(), file, fileHeader)
	if err != nil {
		c.JSON(writeErrorStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.UploadImageResponse{URL: url})
}

func (h *Handler) writerClearPosts(c *gin.Context) {
	deleted, err := h.services.Post.ClearAllPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.ClearPostsResponse{Deleted: deleted})
}

func (h *Handler) writerMigrate(c *gin.Context) {
	migrated, err := h.services.Post.MigrateLocalPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.MigrateResponse{Migrated: migrated})
}

func writeErrorStatus(err error) int {
	switch err {
	case service.ErrTitleAndContentRequired, service.ErrFileMustBeImage, service.ErrImageTooLarge:
		return http.StatusBadRequest
	case service.ErrPostNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
