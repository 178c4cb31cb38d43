package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostingNotFound = errors.New("job posting not found")
	ErrPostingClosed   = errors.New("job posting is no longer accepting applications")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrInvalidPosting  = errors.New("invalid job posting")
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPosting, msg)
}

// ---------------- Enums ----------------

type Department string

const (
	DeptSales          Department = "sales"
	DeptMarketing      Department = "marketing"
	DeptOperations     Department = "operations"
	DeptFinance        Department = "finance"
	DeptHR             Department = "hr"
	DeptIT             Department = "it"
	DeptLegal          Department = "legal"
	DeptAdministration Department = "administration"
)

func (d Department) Valid() bool {
	switch d {
	case DeptSales, DeptMarketing, DeptOperations, DeptFinance,
		DeptHR, DeptIT, DeptLegal, DeptAdministration:
		return true
	}
	return false
}

type EmploymentType string

const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
	Temporary  EmploymentType = "temporary"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship, Temporary:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	EntryLevel  ExperienceLevel = "entry-level"
	MidLevel    ExperienceLevel = "mid-level"
	SeniorLevel ExperienceLevel = "senior-level"
	Executive   ExperienceLevel = "executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case EntryLevel, MidLevel, SeniorLevel, Executive:
		return true
	}
	return false
}

type PostingStatus string

const (
	PostingActive PostingStatus = "active"
	PostingPaused PostingStatus = "paused"
	PostingClosed PostingStatus = "closed"
	PostingDraft  PostingStatus = "draft"
)

func (s PostingStatus) Valid() bool {
	switch s {
	case PostingActive, PostingPaused, PostingClosed, PostingDraft:
		return true
	}
	return false
}

type SalaryPeriod string

const (
	Hourly  SalaryPeriod = "hourly"
	Monthly SalaryPeriod = "monthly"
	Yearly  SalaryPeriod = "yearly"
)

func (p SalaryPeriod) Valid() bool {
	switch p {
	case Hourly, Monthly, Yearly:
		return true
	}
	return false
}

// ---------------- Entity ----------------

type JobLocation struct {
	City   string `json:"city" bson:"city"`
	State  string `json:"state" bson:"state"`
	Remote bool   `json:"remote" bson:"remote"`
}

type Salary struct {
	Min      float64      `json:"min,omitempty" bson:"min,omitempty"`
	Max      float64      `json:"max,omitempty" bson:"max,omitempty"`
	Currency string       `json:"currency" bson:"currency"`
	Period   SalaryPeriod `json:"period" bson:"period"`
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// Posting is one open job position. The slug is derived from the title,
// recomputed only when the title changes.
type Posting struct {
	ID                  uuid.UUID       `json:"id" bson:"_id"`
	Title               string          `json:"title" bson:"title"`
	Slug                string          `json:"slug" bson:"slug"`
	Description         string          `json:"description" bson:"description"`
	Location            JobLocation     `json:"location" bson:"location"`
	Department          Department      `json:"department" bson:"department"`
	EmploymentType      EmploymentType  `json:"employmentType" bson:"employmentType"`
	ExperienceLevel     ExperienceLevel `json:"experienceLevel" bson:"experienceLevel"`
	Salary              Salary          `json:"salary" bson:"salary"`
	Requirements        []string        `json:"requirements" bson:"requirements"`
	Responsibilities    []string        `json:"responsibilities" bson:"responsibilities"`
	Benefits            []string        `json:"benefits" bson:"benefits"`
	Skills              []string        `json:"skills" bson:"skills"`
	Status              PostingStatus   `json:"status" bson:"status"`
	Featured            bool            `json:"featured" bson:"featured"`
	ApplicationDeadline *time.Time      `json:"applicationDeadline,omitempty" bson:"applicationDeadline,omitempty"`
	ContactEmail        string          `json:"contactEmail" bson:"contactEmail"`
	Views               int64           `json:"views" bson:"views"`
	Applications        int64           `json:"applications" bson:"applications"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt" bson:"updatedAt"`
}

func (j *Posting) Validate() error {
	if j.Title == "" {
		return invalid("title is required")
	}
	if j.Description == "" {
		return invalid("description is required")
	}
	if j.Location.City == "" || j.Location.State == "" {
		return invalid("city and state are required")
	}
	if !j.Department.Valid() {
		return invalid(fmt.Sprintf("department %q is not recognized", j.Department))
	}
	if !j.EmploymentType.Valid() {
		return invalid(fmt.Sprintf("employment type %q is not recognized", j.EmploymentType))
	}
	if !j.ExperienceLevel.Valid() {
		return invalid(fmt.Sprintf("experience level %q is not recognized", j.ExperienceLevel))
	}
	if !j.Status.Valid() {
		return invalid(fmt.Sprintf("status %q is not recognized", j.Status))
	}
	if j.Salary.Min < 0 || j.Salary.Max < 0 {
		return invalid("salary cannot be negative")
	}
	if j.Salary.Period != "" && !j.Salary.Period.Valid() {
		return invalid(fmt.Sprintf("salary period %q is not recognized", j.Salary.Period))
	}
	if !emailPattern.MatchString(j.ContactEmail) {
		return invalid("contact email is not valid")
	}
	return nil
}

// NormalizeSkills lowercases and trims skills, dropping empties.
func (j *Posting) NormalizeSkills() {
	out := j.Skills[:0]
	for _, s := range j.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	j.Skills = out
}

// AcceptingApplications reports whether an application may be submitted.
func (j *Posting) AcceptingApplications() bool {
	return j.Status == PostingActive
}

// ---------------- Stats ----------------

type JobStats struct {
	TotalJobs         int64 `json:"totalJobs" bson:"totalJobs"`
	ActiveJobs        int64 `json:"activeJobs" bson:"activeJobs"`
	PausedJobs        int64 `json:"pausedJobs" bson:"pausedJobs"`
	ClosedJobs        int64 `json:"closedJobs" bson:"closedJobs"`
	TotalViews        int64 `json:"totalViews" bson:"totalViews"`
	TotalApplications int64 `json:"totalApplications" bson:"totalApplications"`
}

type DepartmentStat struct {
	Department        Department `json:"department" bson:"_id"`
	Count             int64      `json:"count" bson:"count"`
	TotalApplications int64      `json:"totalApplications" bson:"totalApplications"`
}
