package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Khangithub17/real-estate-project/internal/job/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedMongo "github.com/Khangithub17/real-estate-project/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// JobRepo implements domain.JobRepository for MongoDB.
type JobRepo struct {
	coll *mongo.Collection
}

var _ domain.JobRepository = (*JobRepo)(nil)

func NewJobRepo(ctx context.Context, db *mongo.Database) (*JobRepo, error) {
	coll := db.Collection("jobs")

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "skills", Value: "text"},
		}},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}, {Key: "location.state", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, err
	}

	return &JobRepo{coll: coll}, nil
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Posting) error {
	_, err := r.coll.InsertOne(ctx, j)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrSlugTaken
	}
	return err
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Posting, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *JobRepo) GetBySlug(ctx context.Context, slug string) (*domain.Posting, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *JobRepo) findOne(ctx context.Context, filter bson.M) (*domain.Posting, error) {
	var j domain.Posting
	err := r.coll.FindOne(ctx, filter).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostingNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) Update(ctx context.Context, j *domain.Posting) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": j.ID}, j)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostingNotFound
	}
	return nil
}

func (r *JobRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostingNotFound
	}
	return nil
}

func (r *JobRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*domain.Posting, int64, error) {
	return sharedMongo.FindPage[*domain.Posting](ctx, r.coll, criteria, p, sort)
}

func (r *JobRepo) Featured(ctx context.Context, limit int) ([]*domain.Posting, error) {
	return sharedMongo.FindAll[*domain.Posting](ctx, r.coll, domain.FeaturedCriteria(), limit, sharedQuery.Sort{Field: "createdAt", Desc: true})
}

func (r *JobRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "views")
}

func (r *JobRepo) IncrementApplications(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "applications")
}

// increment uses $inc so concurrent bumps never lose updates.
func (r *JobRepo) increment(ctx context.Context, id uuid.UUID, field string) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated bson.M
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrPostingNotFound
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

func (r *JobRepo) Stats(ctx context.Context) (*domain.JobStats, []domain.DepartmentStat, error) {
	overviewPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"totalJobs": bson.M{"$sum": 1},
			"activeJobs": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "active"}}, 1, 0},
			}},
			"pausedJobs": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "paused"}}, 1, 0},
			}},
			"closedJobs": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "closed"}}, 1, 0},
			}},
			"totalViews":        bson.M{"$sum": "$views"},
			"totalApplications": bson.M{"$sum": "$applications"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overviewPipe)
	if err != nil {
		return nil, nil, err
	}
	var overviews []domain.JobStats
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, nil, err
	}
	overview := &domain.JobStats{}
	if len(overviews) > 0 {
		overview = &overviews[0]
	}

	departmentPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":               "$department",
			"count":             bson.M{"$sum": 1},
			"totalApplications": bson.M{"$sum": "$applications"},
		}}},
	}
	cursor, err = r.coll.Aggregate(ctx, departmentPipe)
	if err != nil {
		return nil, nil, err
	}
	var byDepartment []domain.DepartmentStat
	if err := cursor.All(ctx, &byDepartment); err != nil {
		return nil, nil, err
	}

	return overview, byDepartment, nil
}
