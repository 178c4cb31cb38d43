package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Khangithub17/real-estate-project/internal/listing/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedMongo "github.com/Khangithub17/real-estate-project/internal/shared/infra/db/mongodb"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// ListingRepo implements domain.ListingRepository for MongoDB.
type ListingRepo struct {
	coll *mongo.Collection
}

var _ domain.ListingRepository = (*ListingRepo)(nil)

func NewListingRepo(ctx context.Context, db *mongo.Database) (*ListingRepo, error) {
	coll := db.Collection("listings")

	// text index backs the free-text search filter; the rest back the
	// common filter/sort combinations.
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "location.city", Value: "text"},
		}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "propertyType", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, err
	}

	return &ListingRepo{coll: coll}, nil
}

func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	_, err := r.coll.InsertOne(ctx, l)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrListingExists
	}
	return err
}

func (r *ListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var l domain.Listing
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*domain.Listing, int64, error) {
	return sharedMongo.FindPage[*domain.Listing](ctx, r.coll, criteria, p, sort)
}

func (r *ListingRepo) Featured(ctx context.Context, limit int) ([]*domain.Listing, error) {
	return sharedMongo.FindAll[*domain.Listing](ctx, r.coll, domain.FeaturedCriteria(), limit, sharedQuery.Sort{Field: "createdAt", Desc: true})
}

// IncrementViews bumps the counter with $inc in a single round trip, so
// concurrent increments cannot lose updates.
func (r *ListingRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated struct {
		Views int64 `bson:"views"`
	}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrListingNotFound
		}
		return 0, err
	}
	return updated.Views, nil
}

func (r *ListingRepo) Stats(ctx context.Context) (*domain.ListingStats, []domain.PropertyTypeStat, error) {
	overviewPipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalListings": bson.M{"$sum": 1},
			"availableListings": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "available"}}, 1, 0},
			}},
			"soldListings": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "sold"}}, 1, 0},
			}},
			"pendingListings": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", "pending"}}, 1, 0},
			}},
			"averagePrice": bson.M{"$avg": "$price"},
			"totalViews":   bson.M{"$sum": "$views"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overviewPipe)
	if err != nil {
		return nil, nil, err
	}
	var overviews []domain.ListingStats
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, nil, err
	}
	overview := &domain.ListingStats{}
	if len(overviews) > 0 {
		overview = &overviews[0]
	}

	typePipe := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          "$propertyType",
			"count":        bson.M{"$sum": 1},
			"averagePrice": bson.M{"$avg": "$price"},
		}}},
	}
	cursor, err = r.coll.Aggregate(ctx, typePipe)
	if err != nil {
		return nil, nil, err
	}
	var byType []domain.PropertyTypeStat
	if err := cursor.All(ctx, &byType); err != nil {
		return nil, nil, err
	}

	return overview, byType, nil
}
