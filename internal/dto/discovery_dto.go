package dto

// TenderMetadata is the AI extraction of the summary document. Only the name
// is guaranteed; everything else is best effort.
type TenderMetadata struct {
	Name            string   `json:"name"`
	Budget          string   `json:"budget"`
	ScoringSystem   string   `json:"scoring_system"`
	ExpedientNumber string   `json:"expedient_number"`
	Deadline        string   `json:"deadline"`
	TenderPageUrl   string   `json:"tender_page_url"`
	AdminUrl        string   `json:"admin_url"`
	TechUrl         string   `json:"tech_url"`
	AllLinks        []string `json:"all_links"`
}

type DiscoverResponse struct {
	Metadata   TenderMetadata `json:"metadata"`
	SummaryUrl string         `json:"summary_url"`
	AdminUrl   string         `json:"admin_url"`
	TechUrl    string         `json:"tech_url"`
	Log        []string       `json:"log"`
}

type ScanRequest struct {
	PageUrl string `json:"page_url" validate:"required,url"`
}

type ScanResponse struct {
	AdminUrl string   `json:"admin_url"`
	TechUrl  string   `json:"tech_url"`
	Log      []string `json:"log"`
}
