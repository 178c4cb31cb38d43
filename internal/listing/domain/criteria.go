package domain

import (
	"strconv"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
)

// ListFilter holds the optional listing query parameters, bound straight
// from the query string. Every field is independently omittable; an empty
// value contributes no clause.
type ListFilter struct {
	Search       string `form:"search"`
	PropertyType string `form:"propertyType"`
	Status       string `form:"status"`
	MinPrice     string `form:"minPrice"`
	MaxPrice     string `form:"maxPrice"`
	City         string `form:"city"`
	State        string `form:"state"`
	Bedrooms     string `form:"bedrooms"`
	Bathrooms    string `form:"bathrooms"`
	Featured     string `form:"featured"`
}

// Criteria translates the filter into neutral conditions. Pure: the same
// filter always yields the same criteria. Non-numeric price bounds are
// ignored rather than compiled into a match-nothing clause.
func (f ListFilter) Criteria() shared.Criteria {
	var criterias []shared.Criteria

	if f.Search != "" {
		criterias = append(criterias, shared.Where("", shared.OpText, f.Search))
	}
	if f.PropertyType != "" {
		criterias = append(criterias, shared.Where("propertyType", shared.OpEq, f.PropertyType))
	}
	if f.Status != "" {
		criterias = append(criterias, shared.Where("status", shared.OpEq, f.Status))
	}
	if f.MinPrice != "" {
		if v, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
			criterias = append(criterias, shared.Where("price", shared.OpGte, v))
		}
	}
	if f.MaxPrice != "" {
		if v, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
			criterias = append(criterias, shared.Where("price", shared.OpLte, v))
		}
	}
	if f.City != "" {
		criterias = append(criterias, shared.Where("location.city", shared.OpILike, f.City))
	}
	if f.State != "" {
		criterias = append(criterias, shared.Where("location.state", shared.OpILike, f.State))
	}
	if f.Bedrooms != "" {
		if v, err := strconv.Atoi(f.Bedrooms); err == nil {
			criterias = append(criterias, shared.Where("specifications.bedrooms", shared.OpEq, v))
		}
	}
	if f.Bathrooms != "" {
		if v, err := strconv.Atoi(f.Bathrooms); err == nil {
			criterias = append(criterias, shared.Where("specifications.bathrooms", shared.OpEq, v))
		}
	}
	if f.Featured != "" {
		criterias = append(criterias, shared.Where("featured", shared.OpEq, f.Featured == "true"))
	}

	return shared.And(criterias...)
}

// FeaturedCriteria selects the listings shown on the home page.
func FeaturedCriteria() shared.Criteria {
	return shared.And(
		shared.Where("featured", shared.OpEq, true),
		shared.Where("status", shared.OpEq, string(StatusAvailable)),
	)
}
