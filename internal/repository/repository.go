package repository

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/internal/repository/localstore"
	"github.com/inkandpages/blog-service/internal/repository/mongodb"
	"github.com/inkandpages/blog-service/internal/repository/redisrepo"
	"github.com/inkandpages/blog-service/internal/repository/staticsource"
)

type Repository struct {
	Mongo *mongodb.MongoRepository
	Local *localstore.Store
	Static *staticsource.Source
	Redis *redisrepo.RedisRepository
}

func New(db *mongo.Database, rdb *redis.Client, local *localstore.Store, logger *zap.Logger) *Repository {
	return &Repository{
		Mongo: mongodb.New(db, logger),
		Local: local,
		Static: staticsource.New(),
		Redis: redisrepo.New(rdb),
	}
}
