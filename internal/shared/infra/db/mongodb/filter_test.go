package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

func TestCriteriaToFilterNil(t *testing.T) {
	assert.Equal(t, bson.M{}, CriteriaToFilter(nil))
}

func TestCriteriaToFilterEquality(t *testing.T) {
	filter := CriteriaToFilter(shared.Where("status", shared.OpEq, "available"))
	assert.Equal(t, bson.M{"status": "available"}, filter)
}

func TestCriteriaToFilterMergesRangeOnSameField(t *testing.T) {
	filter := CriteriaToFilter(shared.And(
		shared.Where("price", shared.OpGte, 100000.0),
		shared.Where("price", shared.OpLte, 500000.0),
	))

	assert.Equal(t, bson.M{
		"price": bson.M{"$gte": 100000.0, "$lte": 500000.0},
	}, filter)
}

func TestCriteriaToFilterILike(t *testing.T) {
	filter := CriteriaToFilter(shared.Where("location.city", shared.OpILike, "madrid"))
	assert.Equal(t, bson.M{
		"location.city": bson.M{"$regex": "madrid", "$options": "i"},
	}, filter)
}

func TestCriteriaToFilterIn(t *testing.T) {
	tags := []string{"investment", "news"}
	filter := CriteriaToFilter(shared.Where("tags", shared.OpIn, tags))
	assert.Equal(t, bson.M{"tags": bson.M{"$in": tags}}, filter)
}

func TestCriteriaToFilterText(t *testing.T) {
	filter := CriteriaToFilter(shared.Where("", shared.OpText, "sea views"))
	assert.Equal(t, bson.M{"$text": bson.M{"$search": "sea views"}}, filter)
}

func TestCriteriaToFilterOrGroup(t *testing.T) {
	filter := CriteriaToFilter(shared.And(
		shared.Where("status", shared.OpEq, "active"),
		shared.Or(
			shared.Where("location.city", shared.OpILike, "valencia"),
			shared.Where("location.state", shared.OpILike, "valencia"),
		),
	))

	assert.Equal(t, "active", filter["status"])
	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, bson.M{"location.city": bson.M{"$regex": "valencia", "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"location.state": bson.M{"$regex": "valencia", "$options": "i"}}, or[1])
}

func TestCriteriaToFilterEmptyOr(t *testing.T) {
	assert.Equal(t, bson.M{}, CriteriaToFilter(shared.Or()))
}

func TestCriteriaToFilterTwoOrGroupsConjoin(t *testing.T) {
	filter := CriteriaToFilter(shared.And(
		shared.Or(
			shared.Where("location.city", shared.OpILike, "valencia"),
			shared.Where("location.state", shared.OpILike, "valencia"),
		),
		shared.Or(
			shared.Where("status", shared.OpEq, "active"),
			shared.Where("status", shared.OpEq, "paused"),
		),
	))

	// both groups survive under $and instead of one overwriting the other
	and, ok := filter["$and"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, and, 2)
	for _, clause := range and {
		or, ok := clause["$or"].([]bson.M)
		assert.True(t, ok)
		assert.Len(t, or, 2)
	}
	_, hasTopLevelOr := filter["$or"]
	assert.False(t, hasTopLevelOr)
}

func TestCriteriaToFilterConflictingEqualities(t *testing.T) {
	filter := CriteriaToFilter(shared.And(
		shared.Where("status", shared.OpEq, "active"),
		shared.Where("status", shared.OpEq, "paused"),
	))

	and, ok := filter["$and"].([]bson.M)
	assert.True(t, ok)
	assert.Equal(t, []bson.M{
		{"status": "active"},
		{"status": "paused"},
	}, and)
}

func TestSortDocAppendsTieBreak(t *testing.T) {
	doc := sortDoc(sharedQuery.Sort{Field: "createdAt", Desc: true})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}, doc)

	doc = sortDoc(sharedQuery.Sort{Field: "price"})
	assert.Equal(t, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}, doc)

	doc = sortDoc(sharedQuery.Sort{})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}, doc)
}
