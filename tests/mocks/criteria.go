package mocks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// fieldGetter resolves a neutral filter field against an in-memory record.
// The empty field name must return the record's full-text blob.
type fieldGetter[T any] func(rec T, field string) (interface{}, bool)

// matches evaluates a criteria tree against one record, honoring AND/OR
// groups the same way the storage adapters do.
func matches[T any](rec T, criteria shared.Criteria, get fieldGetter[T]) bool {
	if criteria == nil {
		return true
	}

	if composite, ok := criteria.(shared.CompositeCriteria); ok {
		if len(composite.Criterias) == 0 {
			return true
		}
		if composite.Operator == shared.OpOr {
			for _, child := range composite.Criterias {
				if matches(rec, child, get) {
					return true
				}
			}
			return false
		}
		for _, child := range composite.Criterias {
			if !matches(rec, child, get) {
				return false
			}
		}
		return true
	}

	for _, cond := range criteria.ToConditions() {
		if !matchCriterion(rec, cond, get) {
			return false
		}
	}
	return true
}

func matchCriterion[T any](rec T, crit shared.Criterion, get fieldGetter[T]) bool {
	val, ok := get(rec, crit.Field)
	if !ok {
		// unknown field: be permissive in the mock
		return true
	}

	switch crit.Op {
	case shared.OpEq:
		return fmt.Sprint(val) == fmt.Sprint(crit.Value)

	case shared.OpILike:
		return strings.Contains(
			strings.ToLower(fmt.Sprint(val)),
			strings.ToLower(fmt.Sprint(crit.Value)),
		)

	case shared.OpText:
		return strings.Contains(
			strings.ToLower(fmt.Sprint(val)),
			strings.ToLower(fmt.Sprint(crit.Value)),
		)

	case shared.OpGt, shared.OpGte, shared.OpLt, shared.OpLte:
		a, okA := toFloat(val)
		b, okB := toFloat(crit.Value)
		if !okA || !okB {
			return true
		}
		switch crit.Op {
		case shared.OpGt:
			return a > b
		case shared.OpGte:
			return a >= b
		case shared.OpLt:
			return a < b
		default:
			return a <= b
		}

	case shared.OpIn:
		wanted, ok := crit.Value.([]string)
		if !ok {
			return true
		}
		if have, ok := val.([]string); ok {
			for _, w := range wanted {
				for _, h := range have {
					if h == w {
						return true
					}
				}
			}
			return false
		}
		for _, w := range wanted {
			if fmt.Sprint(val) == w {
				return true
			}
		}
		return false

	default:
		return true
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// sortAndPage orders records by the sort field via the getter and slices out
// the requested page, mirroring the skip/limit behavior of the real adapter.
func sortAndPage[T any](list []T, s sharedQuery.Sort, p sharedQuery.Pagination, get fieldGetter[T]) []T {
	if s.Field != "" {
		sort.SliceStable(list, func(i, j int) bool {
			vi, _ := get(list[i], s.Field)
			vj, _ := get(list[j], s.Field)
			less := compareValues(vi, vj) < 0
			if s.Desc {
				return !less && compareValues(vi, vj) != 0
			}
			return less
		})
	}

	start := p.Offset()
	if start >= len(list) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

func compareValues(a, b interface{}) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}
