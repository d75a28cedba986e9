package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/internal/config"
	"github.com/inkandpages/blog-service/internal/model"
)

const postsCollection = "posts"

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	Update(ctx context.Context, id string, update model.PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	All(ctx context.Context) ([]*model.Post, bool)
	Published(ctx context.Context) ([]*model.Post, bool)
	FindByTag(ctx context.Context, tag string) ([]*model.Post, bool)
}

type MongoRepository struct {
	Post
}

func New(db *mongo.Database, logger *zap.Logger) *MongoRepository {
	return &MongoRepository{
		Post: newPostRepo(db, logger),
	}
}

// DB connects to the hosted document database and verifies the connection.
func DB(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, err
	}

	return client.Database(cfg.Database), nil
}
