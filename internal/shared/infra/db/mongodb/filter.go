package mongodb

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	sharedDomain "github.com/Khangithub17/real-estate-project/internal/shared/domain"
)

// CriteriaToFilter translates neutral criteria into a mongo filter document.
// AND children are merged into one conjunction; OR children become a $or
// clause; several range conditions on the same field are merged into a
// single operator document (minPrice + maxPrice -> {$gte, $lte}).
func CriteriaToFilter(criteria sharedDomain.Criteria) bson.M {
	if criteria == nil {
		return bson.M{}
	}

	if comp, ok := criteria.(sharedDomain.CompositeCriteria); ok {
		if comp.Operator == sharedDomain.OpOr {
			parts := make([]bson.M, 0, len(comp.Criterias))
			for _, child := range comp.Criterias {
				if part := CriteriaToFilter(child); len(part) > 0 {
					parts = append(parts, part)
				}
			}
			if len(parts) == 0 {
				return bson.M{}
			}
			return bson.M{"$or": parts}
		}

		filter := bson.M{}
		for _, child := range comp.Criterias {
			merge(filter, CriteriaToFilter(child))
		}
		return filter
	}

	filter := bson.M{}
	for _, cond := range criteria.ToConditions() {
		merge(filter, conditionToFilter(cond))
	}
	return filter
}

func conditionToFilter(c sharedDomain.Criterion) bson.M {
	switch c.Op {
	case sharedDomain.OpEq:
		return bson.M{c.Field: c.Value}
	case sharedDomain.OpGt:
		return bson.M{c.Field: bson.M{"$gt": c.Value}}
	case sharedDomain.OpGte:
		return bson.M{c.Field: bson.M{"$gte": c.Value}}
	case sharedDomain.OpLt:
		return bson.M{c.Field: bson.M{"$lt": c.Value}}
	case sharedDomain.OpLte:
		return bson.M{c.Field: bson.M{"$lte": c.Value}}
	case sharedDomain.OpILike:
		return bson.M{c.Field: bson.M{"$regex": c.Value, "$options": "i"}}
	case sharedDomain.OpIn:
		return bson.M{c.Field: bson.M{"$in": c.Value}}
	case sharedDomain.OpText:
		return bson.M{"$text": bson.M{"$search": c.Value}}
	default:
		return bson.M{c.Field: c.Value}
	}
}

// merge folds src into dst, combining operator documents when both sides
// constrain the same field. Clauses that cannot share one key (two $or
// groups, conflicting equalities) are pushed under $and, so the result
// stays a valid conjunction for any criteria tree.
func merge(dst, src bson.M) {
	for field, value := range src {
		existing, ok := dst[field]
		if !ok {
			dst[field] = value
			continue
		}
		existingOps, eok := existing.(bson.M)
		valueOps, vok := value.(bson.M)
		if eok && vok && !strings.HasPrefix(field, "$") {
			for op, v := range valueOps {
				existingOps[op] = v
			}
			continue
		}
		and, _ := dst["$and"].([]bson.M)
		delete(dst, field)
		dst["$and"] = append(and, bson.M{field: existing}, bson.M{field: value})
	}
}
