package request_models

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Remember bool   `json:"remember" form:"remember"`
}

type RegisterRequest struct {
	FirstName       string `json:"first_name" form:"first_name" binding:"required,max=20"`
	LastName        string `json:"last_name" form:"last_name" binding:"required,max=20"`
	Street          string `json:"street" form:"street" binding:"required,max=100"`
	City            string `json:"city" form:"city" binding:"required,max=50"`
	Zipcode         int    `json:"zipcode" form:"zipcode" binding:"required,gte=11111,lte=99999"`
	Phone           string `json:"phone" form:"phone" binding:"required,len=10,numeric"`
	Email           string `json:"email" form:"email" binding:"required,email,edu,max=120"`
	DateOfBirth     string `json:"dob" form:"dob" binding:"required,isodate"`
	Gender          string `json:"gender" form:"gender" binding:"required,oneof=Male Female Undecided"`
	VisaStatus      string `json:"visa_status" form:"visa_status" binding:"required,oneof=F-1 J-1"`
	Username        string `json:"username" form:"username" binding:"required,min=2,max=20"`
	Password        string `json:"password" form:"password" binding:"required,min=8,max=12,strongpassword"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required,eqfield=Password"`
}

// UpdateAccountRequest is bound from a multipart form; the picture travels
// as a separate file part.
type UpdateAccountRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=2,max=20"`
	Email    string `json:"email" form:"email" binding:"required,email,max=120"`
}

type RequestResetRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" form:"password" binding:"required,min=8,max=12,strongpassword"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required,eqfield=Password"`
}

type JobSearchRequest struct {
	Title       string `json:"title" form:"title" binding:"max=100"`
	Description string `json:"description" form:"description" binding:"max=100"`
	CompanyName string `json:"company_name" form:"company_name" binding:"max=100"`
}

// JobIDQuery is the ?jobId= bookmark toggle on /jobs and /savedjobs.
type JobIDQuery struct {
	JobID string `form:"jobId" binding:"omitempty,uuid"`
}
