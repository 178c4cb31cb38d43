package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedMongo "github.com/Khangithub17/real-estate-project/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// AccountRepo implements domain.AccountRepository for MongoDB.
type AccountRepo struct {
	coll *mongo.Collection
}

var _ domain.AccountRepository = (*AccountRepo)(nil)

func NewAccountRepo(ctx context.Context, db *mongo.Database) (*AccountRepo, error) {
	coll := db.Collection("users")

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}

	return &AccountRepo{coll: coll}, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAccountExists
	}
	return err
}

func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepo) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var a domain.Account
	err := r.coll.FindOne(ctx, filter).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Update(ctx context.Context, a *domain.Account) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*domain.Account, int64, error) {
	return sharedMongo.FindPage[*domain.Account](ctx, r.coll, criteria, p, sort)
}

func (r *AccountRepo) Stats(ctx context.Context) (*domain.AccountStats, []domain.RoleStat, error) {
	cutoff := time.Now().UTC().Add(-domain.RecentLoginWindow)

	overviewPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalUsers": bson.M{"$sum": 1},
			"activeUsers": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$active", 1, 0},
			}},
			"inactiveUsers": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$active", 0, 1},
			}},
			"adminUsers": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$role", "admin"}}, 1, 0},
			}},
			"recentLogins": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gte": bson.A{"$lastLoginAt", cutoff}}, 1, 0},
			}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overviewPipe)
	if err != nil {
		return nil, nil, err
	}
	var overviews []domain.AccountStats
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, nil, err
	}
	overview := &domain.AccountStats{}
	if len(overviews) > 0 {
		overview = &overviews[0]
	}

	rolePipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$role",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err = r.coll.Aggregate(ctx, rolePipe)
	if err != nil {
		return nil, nil, err
	}
	var byRole []domain.RoleStat
	if err := cursor.All(ctx, &byRole); err != nil {
		return nil, nil, err
	}

	return overview, byRole, nil
}
