package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Khangithub17/real-estate-project/internal/blog/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedMongo "github.com/Khangithub17/real-estate-project/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// BlogRepo implements domain.BlogRepository for MongoDB.
type BlogRepo struct {
	coll *mongo.Collection
}

var _ domain.BlogRepository = (*BlogRepo)(nil)

func NewBlogRepo(ctx context.Context, db *mongo.Database) (*BlogRepo, error) {
	coll := db.Collection("blogs")

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "content", Value: "text"},
			{Key: "tags", Value: "text"},
		}},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, err
	}

	return &BlogRepo{coll: coll}, nil
}

func (r *BlogRepo) Create(ctx context.Context, p *domain.Post) error {
	_, err := r.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrSlugTaken
	}
	return err
}

func (r *BlogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *BlogRepo) findOne(ctx context.Context, filter bson.M) (*domain.Post, error) {
	var p domain.Post
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *BlogRepo) Update(ctx context.Context, p *domain.Post) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *BlogRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *BlogRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*domain.Post, int64, error) {
	return sharedMongo.FindPage[*domain.Post](ctx, r.coll, criteria, p, sort)
}

func (r *BlogRepo) Featured(ctx context.Context, limit int) ([]*domain.Post, error) {
	return sharedMongo.FindAll[*domain.Post](ctx, r.coll, domain.FeaturedCriteria(), limit, sharedQuery.Sort{Field: "createdAt", Desc: true})
}

func (r *BlogRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "views")
}

func (r *BlogRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "likes")
}

// increment uses $inc so concurrent bumps never lose updates.
func (r *BlogRepo) increment(ctx context.Context, id uuid.UUID, field string) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated bson.M
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrPostNotFound
		}
		return 0, err
	}
	switch v := updated[field].(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, nil
	}
}

func (r *BlogRepo) Stats(ctx context.Context) (*domain.BlogStats, []domain.CategoryStat, error) {
	overviewPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalPosts": bson.M{"$sum": 1},
			"publishedPosts": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "published"}}, 1, 0},
			}},
			"draftPosts": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "draft"}}, 1, 0},
			}},
			"archivedPosts": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "archived"}}, 1, 0},
			}},
			"totalViews": bson.M{"$sum": "$views"},
			"totalLikes": bson.M{"$sum": "$likes"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overviewPipe)
	if err != nil {
		return nil, nil, err
	}
	var overviews []domain.BlogStats
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, nil, err
	}
	overview := &domain.BlogStats{}
	if len(overviews) > 0 {
		overview = &overviews[0]
	}

	categoryPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$category",
			"count":      bson.M{"$sum": 1},
			"totalViews": bson.M{"$sum": "$views"},
		}}},
	}
	cursor, err = r.coll.Aggregate(ctx, categoryPipe)
	if err != nil {
		return nil, nil, err
	}
	var byCategory []domain.CategoryStat
	if err := cursor.All(ctx, &byCategory); err != nil {
		return nil, nil, err
	}

	return overview, byCategory, nil
}
