// Package dto holds the visibility projections. Which fields a caller
// sees depends on their perspective: public views never carry status,
// postedBy or the candidate list.
package dto

import (
	"encoding/json"
	"time"

	"jobdesk/internal/domain/job"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
)

// PublicJobResponse is the list/search projection.
type PublicJobResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Field            string    `json:"field"`
	Position         string    `json:"position"`
	Salary           string    `json:"salary"`
	WorkLocation     string    `json:"workLocation"`
	Description      string    `json:"description"`
	DeadlineDate     time.Time `json:"deadlineDate"`
	NumberApplicants int       `json:"numberApplicants"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// JobDetailResponse adds the caller-specific isApplied flag.
type JobDetailResponse struct {
	PublicJobResponse
	IsApplied bool `json:"isApplied"`
}

// OwnerJobResponse is the unstripped view for the posting's owner.
type OwnerJobResponse struct {
	PublicJobResponse
	Status        string                `json:"status"`
	PostedBy      uuid.UUID             `json:"postedBy"`
	CandidateList []ApplicationResponse `json:"candidateList"`
}

type ApplicationResponse struct {
	ID        uuid.UUID       `json:"id"`
	User      uuid.UUID       `json:"user"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	CV        json.RawMessage `json:"cv,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewPublicJob(j job.Job) PublicJobResponse {
	return PublicJobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Field:            j.Field,
		Position:         j.Position,
		Salary:           j.Salary,
		WorkLocation:     j.WorkLocation,
		Description:      j.Description,
		DeadlineDate:     j.DeadlineDate,
		NumberApplicants: j.NumberApplicants,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func NewPublicJobs(jobs []job.Job) []PublicJobResponse {
	out := make([]PublicJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewPublicJob(j))
	}
	return out
}

func NewJobDetail(d usecase.JobDetail) JobDetailResponse {
	return JobDetailResponse{
		PublicJobResponse: NewPublicJob(d.Job),
		IsApplied:         d.IsApplied,
	}
}

func NewOwnerJob(j job.Job, candidates []job.Application) OwnerJobResponse {
	return OwnerJobResponse{
		PublicJobResponse: NewPublicJob(j),
		Status:            string(j.Status),
		PostedBy:          j.PostedBy,
		CandidateList:     NewApplications(candidates),
	}
}

func NewApplication(a job.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		User:      a.User,
		Name:      a.Name,
		Status:    string(a.Status),
		CV:        a.CV,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewApplications(apps []job.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplication(a))
	}
	return out
}
