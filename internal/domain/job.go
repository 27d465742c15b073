package domain

// JobPosting is the normalized input record for one analysis call.
// Every field is optional except that at least one of Title or
// Description must be non-empty; upstream scraping frequently yields
// partial data and the pipeline degrades instead of failing.
type JobPosting struct {
	Title         string `json:"title,omitempty"`
	Company       string `json:"company,omitempty"`
	CompanyDomain string `json:"company_domain,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
	Location      string `json:"location,omitempty"`
	Description   string `json:"description,omitempty"`
	Requirements  string `json:"requirements,omitempty"`
	Salary        string `json:"salary,omitempty"`
	JobType       string `json:"job_type,omitempty"`
	Experience    string `json:"experience,omitempty"`
	Portal        string `json:"portal,omitempty"` // naukri.com/linkedin.com/indeed.com/manual_input/etc.
	URL           string `json:"url,omitempty"`
}

// Empty reports whether the posting carries nothing the pipeline can
// work with.
func (p JobPosting) Empty() bool {
	return p.Title == "" && p.Description == ""
}

// InputType tags how the raw input arrived at the engine.
type InputType string

const (
	InputURL  InputType = "url"
	InputText InputType = "text"
)
