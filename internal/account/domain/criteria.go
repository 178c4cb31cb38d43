package domain

import (
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
)

// ListFilter holds the optional account query parameters.
type ListFilter struct {
	Search string `form:"search"` // matches username or email
	Role   string `form:"role"`
	Active string `form:"active"`
}

// Criteria translates the filter into neutral conditions.
func (f ListFilter) Criteria() shared.Criteria {
	var criterias []shared.Criteria

	if f.Search != "" {
		criterias = append(criterias, shared.Or(
			shared.Where("username", shared.OpILike, f.Search),
			shared.Where("email", shared.OpILike, f.Search),
		))
	}
	if f.Role != "" {
		criterias = append(criterias, shared.Where("role", shared.OpEq, f.Role))
	}
	if f.Active != "" {
		criterias = append(criterias, shared.Where("active", shared.OpEq, f.Active == "true"))
	}

	return shared.And(criterias...)
}
