package domain

import (
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
)

// ListFilter holds the optional job query parameters.
type ListFilter struct {
	Search          string `form:"search"`
	Department      string `form:"department"`
	EmploymentType  string `form:"employmentType"`
	ExperienceLevel string `form:"experienceLevel"`
	Status          string `form:"status"`
	Location        string `form:"location"` // matches city or state
	Remote          string `form:"remote"`
	Featured        string `form:"featured"`
}

// Criteria translates the filter into neutral conditions. Pure and
// idempotent.
func (f ListFilter) Criteria() shared.Criteria {
	var criterias []shared.Criteria

	if f.Search != "" {
		criterias = append(criterias, shared.Where("", shared.OpText, f.Search))
	}
	if f.Department != "" {
		criterias = append(criterias, shared.Where("department", shared.OpEq, f.Department))
	}
	if f.EmploymentType != "" {
		criterias = append(criterias, shared.Where("employmentType", shared.OpEq, f.EmploymentType))
	}
	if f.ExperienceLevel != "" {
		criterias = append(criterias, shared.Where("experienceLevel", shared.OpEq, f.ExperienceLevel))
	}
	if f.Status != "" {
		criterias = append(criterias, shared.Where("status", shared.OpEq, f.Status))
	}
	if f.Location != "" {
		criterias = append(criterias, shared.Or(
			shared.Where("location.city", shared.OpILike, f.Location),
			shared.Where("location.state", shared.OpILike, f.Location),
		))
	}
	if f.Remote != "" {
		criterias = append(criterias, shared.Where("location.remote", shared.OpEq, f.Remote == "true"))
	}
	if f.Featured != "" {
		criterias = append(criterias, shared.Where("featured", shared.OpEq, f.Featured == "true"))
	}

	return shared.And(criterias...)
}

// FeaturedCriteria selects the openings highlighted on the careers page.
func FeaturedCriteria() shared.Criteria {
	return shared.And(
		shared.Where("featured", shared.OpEq, true),
		shared.Where("status", shared.OpEq, string(PostingActive)),
	)
}
