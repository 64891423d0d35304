package response_models

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type CompanyCount struct {
	CompanyName string `json:"company_name"`
	Count       int64  `json:"count"`
}

// AnalysisReport backs the /analysis page.
type AnalysisReport struct {
	TotalJobs    int64          `json:"total_jobs"`
	BySource     []SourceCount  `json:"by_source"`
	TopCompanies []CompanyCount `json:"top_companies"`
	SavedJobs    int64          `json:"saved_jobs"`
}

type AdminKPIs struct {
	TotalUsers      int64 `json:"total_users"`
	ExclusiveUsers  int64 `json:"exclusive_users"`
	TotalJobs       int64 `json:"total_jobs"`
	PendingApproval int64 `json:"pending_approval"`
	TotalPosts      int64 `json:"total_posts"`
	TotalPayments   int64 `json:"total_payments"`
	NewUsers7d      int64 `json:"new_users_7d"`
}

type AdminDashboard struct {
	KPIs     AdminKPIs     `json:"kpis"`
	BySource []SourceCount `json:"by_source"`
}

type IngestionResult struct {
	Source   string `json:"source"`
	URL      string `json:"url"`
	Fetched  int    `json:"fetched"`
	Filtered int    `json:"filtered"`
	Inserted int    `json:"inserted"`
	// set when the remote call failed; ingestion still succeeds with zero rows
	FetchError string `json:"fetch_error,omitempty"`
}
