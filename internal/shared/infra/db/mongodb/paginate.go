package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedDomain "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// sortDoc builds the sort specification. _id ascending is appended as a
// tie-break key so records with equal sort values keep a stable order
// across pages.
func sortDoc(sort sharedQuery.Sort) bson.D {
	field := sort.Field
	if field == "" {
		field = "createdAt"
	}
	dir := 1
	if sort.Desc {
		dir = -1
	}
	doc := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		doc = append(doc, bson.E{Key: "_id", Value: 1})
	}
	return doc
}

// FindPage runs one filtered, sorted, paginated query plus a count of all
// matching documents. An out-of-range page yields an empty slice, not an
// error.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, criteria sharedDomain.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]T, int64, error) {
	filter := CriteriaToFilter(criteria)

	opts := options.Find().
		SetSort(sortDoc(sort)).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindAll runs a filtered, sorted query capped at limit, without counting.
// Used by the featured-record lookups.
func FindAll[T any](ctx context.Context, coll *mongo.Collection, criteria sharedDomain.Criteria, limit int, sort sharedQuery.Sort) ([]T, error) {
	filter := CriteriaToFilter(criteria)

	opts := options.Find().SetSort(sortDoc(sort))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
