package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/internal/model"
)

type postRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func newPostRepo(db *mongo.Database, logger *zap.Logger) Post {
	return &postRepo{
		coll: db.Collection(postsCollection),
		logger: logger,
	}
}

// Create inserts the post with store-assigned id and timestamps. PublishedAt
// is set to now when the post is created published without an explicit value.
func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now().UnixMilli()
	post.ID = primitive.NewObjectID().Hex()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Published {
		if post.PublishedAt == 0 {
			post.PublishedAt = now
		}
	} else {
		post.PublishedAt = 0
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	return &post, nil
}

// Update applies a partial field merge. Unpublishing clears PublishedAt;
// publishing without an explicit value assigns the current time.
func (r *postRepo) Update(ctx context.Context, id string, update model.PostUpdate) (*model.Post, error) {
	set := bson.M{"updated_at": time.Now().UnixMilli()}
	unset := bson.M{}

	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Excerpt != nil {
		set["excerpt"] = *update.Excerpt
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}
	if update.ReadingTime != nil {
		set["reading_time"] = *update.ReadingTime
	}
	if update.CoverImage != nil {
		set["cover_image"] = *update.CoverImage
	}
	if update.Published != nil {
		set["published"] = *update.Published
		if *update.Published {
			if update.PublishedAt != nil {
				set["published_at"] = *update.PublishedAt
			} else {
				set["published_at"] = time.Now().UnixMilli()
			}
		} else {
			unset["published_at"] = ""
		}
	}

	change := bson.M{"$set": set}
	if len(unset) > 0 {
		change["$unset"] = unset
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var updated model.Post
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, change, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &updated, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ClearAll removes every hosted post and returns how many were deleted.
func (r *postRepo) ClearAll(ctx context.Context) (int, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}

// FindByID returns nil both when the post is absent and when the read fails,
// so the resolution layer can fall back to the other sources.
func (r *postRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		r.logger.Sugar().Errorf("failed to find post(%s) in mongo: %s", id, err.Error())
		return nil, nil
	}
	return &post, nil
}

// All returns every hosted post ordered by creation time descending. Read
// failures degrade to an empty result with ok=false.
func (r *postRepo) All(ctx context.Context) ([]*model.Post, bool) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// Published returns the published hosted posts ordered by publish time
// descending.
func (r *postRepo) Published(ctx context.Context) ([]*model.Post, bool) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	return r.find(ctx, bson.M{"published": true}, opts)
}

// FindByTag returns the published hosted posts carrying the given tag.
func (r *postRepo) FindByTag(ctx context.Context, tag string) ([]*model.Post, bool) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	return r.find(ctx, bson.M{"published": true, "tags": tag}, opts)
}

func (r *postRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Post, bool) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Sugar().Errorf("failed to query posts from mongo: %s", err.Error())
		return nil, false
	}
	defer cursor.Close(ctx)

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		r.logger.Sugar().Errorf("failed to decode posts from mongo: %s", err.Error())
		return nil, false
	}
	return posts, true
}
