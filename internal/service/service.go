package service

import (
	"context"
	"mime/multipart"

	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/internal/model"
	"github.com/inkandpages/blog-service/internal/repository"
)

// Post is the resolution layer: reads consult the hosted source and degrade
// to the static and local sources, writes target the hosted source only.
// Read methods never fail; they return whatever the reachable sources hold.
type Post interface {
	GetAllPosts(ctx context.Context) []*model.Post
	GetPublishedPosts(ctx context.Context) []*model.Post
	GetPostsByTag(ctx context.Context, tag string) []*model.Post
	SearchPosts(ctx context.Context, term string) []*model.Post
	GetPostByIDSync(id string) *model.Post
	GetPostByID(ctx context.Context, id string) *model.Post
	Create(ctx context.Context, input dto.CreatePostRequest) (*model.Post, error)
	Update(ctx context.Context, id string, input dto.EditPostRequest) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	ClearAllPosts(ctx context.Context) (int, error)
	SaveDraft(id string, input dto.SaveDraftRequest) error
	GetDraft(id string) (*model.Draft, error)
	ClearDraft(id string) error
	MigrateLocalPosts(ctx context.Context) (int, error)
}

type Auth interface {
	SignIn(email string, password string) (string, error)
	IsWriter(email string) bool
}

type Image interface {
	Upload(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error)
}

type Service struct {
	Post
	Auth
	Image
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	return &Service{
		Post: newPostService(logger, repo),
		Auth: newAuthService(logger),
		Image: newImageService(logger),
	}
}
