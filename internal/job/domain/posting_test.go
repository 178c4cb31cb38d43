package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
)

func TestPostingValidate(t *testing.T) {
	valid := func() *Posting {
		return &Posting{
			Title:           "Sales Associate",
			Description:     "Sell homes",
			Location:        JobLocation{City: "Madrid", State: "Madrid"},
			Department:      DeptSales,
			EmploymentType:  FullTime,
			ExperienceLevel: EntryLevel,
			Status:          PostingActive,
			ContactEmail:    "hr@example.com",
		}
	}

	assert.NoError(t, valid().Validate())

	j := valid()
	j.ContactEmail = "nope"
	assert.ErrorIs(t, j.Validate(), ErrInvalidPosting)

	j = valid()
	j.Salary = Salary{Min: -1}
	assert.ErrorIs(t, j.Validate(), ErrInvalidPosting)

	j = valid()
	j.Salary = Salary{Min: 30000, Max: 40000, Currency: "EUR", Period: Yearly}
	assert.NoError(t, j.Validate())

	j = valid()
	j.EmploymentType = "gig"
	assert.ErrorIs(t, j.Validate(), ErrInvalidPosting)
}

func TestAcceptingApplications(t *testing.T) {
	j := &Posting{Status: PostingActive}
	assert.True(t, j.AcceptingApplications())

	for _, s := range []PostingStatus{PostingPaused, PostingClosed, PostingDraft} {
		j.Status = s
		assert.False(t, j.AcceptingApplications(), "status %s", s)
	}
}

func TestRecomputeSlugOnlyOnTitleChange(t *testing.T) {
	j := &Posting{Title: "Sales Associate", Slug: "sales-associate"}

	j.RecomputeSlug("Sales Associate")
	assert.Equal(t, "sales-associate", j.Slug)

	j.Title = "Senior Sales Associate"
	j.RecomputeSlug("Sales Associate")
	assert.Equal(t, "senior-sales-associate", j.Slug)
}

func TestListFilterLocationBuildsOrGroup(t *testing.T) {
	criteria := ListFilter{Location: "valencia"}.Criteria()

	composite, ok := criteria.(shared.CompositeCriteria)
	assert.True(t, ok)
	assert.Equal(t, shared.OpAnd, composite.Operator)
	assert.Len(t, composite.Criterias, 1)

	group, ok := composite.Criterias[0].(shared.CompositeCriteria)
	assert.True(t, ok)
	assert.Equal(t, shared.OpOr, group.Operator)
	assert.Len(t, group.Criterias, 2)
}

func TestListFilterBooleanCoding(t *testing.T) {
	conds := ListFilter{Remote: "true", Featured: "false"}.Criteria().ToConditions()
	assert.Len(t, conds, 2)

	byField := map[string]interface{}{}
	for _, c := range conds {
		byField[c.Field] = c.Value
	}
	assert.Equal(t, true, byField["location.remote"])
	assert.Equal(t, false, byField["featured"])
}
