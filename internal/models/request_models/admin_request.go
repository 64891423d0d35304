package request_models

type GitHubIngestRequest struct {
	Description string `json:"description" form:"description" binding:"required,max=100"`
	Location    string `json:"location" form:"location" binding:"required,max=100"`
	FullTime    bool   `json:"full_time" form:"full_time"`
	Save        bool   `json:"save" form:"save"`
}

type MuseIngestRequest struct {
	PositionName string `json:"position_name" form:"position_name" binding:"required,max=100"`
	Category     string `json:"category" form:"category" binding:"required,musecategory"`
	Page         int    `json:"page" form:"page" binding:"required,min=1"`
	Level        string `json:"level" form:"level" binding:"required,muselevel"`
	Save         bool   `json:"save" form:"save"`
}

// UpdateJobRequest is the admin grid inline edit. Nil fields are untouched.
type UpdateJobRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	CompanyName *string `json:"company_name"`
	DatePosted  *string `json:"date_posted"`
	Link        *string `json:"link"`
	Approved    *bool   `json:"approved"`
}

type CreatePostRequest struct {
	Title        string `json:"title" form:"title" binding:"required,max=100"`
	Content      string `json:"content" form:"content" binding:"required"`
	ImageAddress string `json:"image_address" form:"image_address" binding:"omitempty,url,max=255"`
	Hyperlink    string `json:"hyperlink" form:"hyperlink" binding:"omitempty,url,max=255"`
}

// AdminJobQuery filters the admin job grid.
type AdminJobQuery struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	CompanyName string `form:"company_name"`
	Source      string `form:"source"`
	Approved    *bool  `form:"approved"`
}

type SavedSearchRequest struct {
	Source   string `json:"source" binding:"required"`
	Keywords string `json:"keywords" binding:"required,max=100"`
	Location string `json:"location" binding:"max=100"`
	FullTime bool   `json:"full_time"`
	Category string `json:"category" binding:"omitempty,musecategory"`
	Level    string `json:"level" binding:"omitempty,muselevel"`
	Page     int    `json:"page" binding:"omitempty,min=1"`
}
