package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

// Insert persists a new post document.
func (r *PostRepository) Insert(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []domain.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateFields applies a $set of the patched fields and returns the updated
// document. A missing id yields domain.ErrPostNotFound; the call never
// upserts.
func (r *PostRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, patch ports.PostPatch) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}

	var p domain.Post
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeleteWhere removes all posts matching the sweep filter.
func (r *PostRepository) DeleteWhere(ctx context.Context, sweep ports.PostSweep) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if sweep.MissingImage {
		filter["$or"] = bson.A{
			bson.M{"image": bson.M{"$exists": false}},
			bson.M{"image": ""},
			bson.M{"image": nil},
		}
	}

	res, err := r.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpdateOwnerSnapshot rewrites one post's embedded owner copy.
func (r *PostRepository) UpdateOwnerSnapshot(ctx context.Context, id primitive.ObjectID, snap domain.OwnerSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"user": snap}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// UpdateOwnerSnapshots fans the snapshot out across the collection, matched
// by the denormalized foreign key, not by primary key.
func (r *PostRepository) UpdateOwnerSnapshots(ctx context.Context, ownerID primitive.ObjectID, snap domain.OwnerSnapshot) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx, bson.M{"user._id": ownerID}, bson.M{"$set": bson.M{"user": snap}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// EnsureIndexes creates the indexes the synchronizer's fan-out relies on.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user._id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.PostRepository = (*PostRepository)(nil)
