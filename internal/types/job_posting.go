package types

import "time"

// JobPosting represents an open role that candidates are scored against
type JobPosting struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	MustHaveSkills   []string  `json:"mustHaveSkills"`
	NiceToHaveSkills []string  `json:"niceToHaveSkills"`
	MinYears         int       `json:"minYears"`
	Location         string    `json:"location,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ActiveJobs filters jobs down to the ones currently open for matching
func ActiveJobs(jobs []JobPosting) []JobPosting {
	active := make([]JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if j.IsActive {
			active = append(active, j)
		}
	}
	return active
}
