package response_models

import "jobboard/internal/models/db_models"

type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	// /purchase?name=...&token=...
	Redirect string `json:"redirect"`
}

type AccountResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Zipcode     int    `json:"zipcode"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dob"`
	Gender      string `json:"gender"`
	VisaStatus  string `json:"visa_status"`
	ImageFile   string `json:"image_file"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

func NewAccountResponse(u *db_models.User) AccountResponse {
	return AccountResponse{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
		Email:       u.Email,
		Street:      u.Street,
		City:        u.City,
		Zipcode:     u.Zipcode,
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth.Format("2006-01-02"),
		Gender:      u.Gender,
		VisaStatus:  u.VisaStatus,
		ImageFile:   u.ImageFile,
		Role:        string(u.Role),
		Status:      string(u.Status),
	}
}

type CheckoutResponse struct {
	Action    string            `json:"action"`
	FirstName string            `json:"first_name"`
	Fields    map[string]string `json:"fields"`
}

type EntitlementResponse struct {
	Username string `json:"username"`
	Status   string `json:"status"`
	// false until the payment notification has been verified
	Exclusive bool `json:"exclusive"`
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
