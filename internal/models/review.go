package models

// CreateReviewRequest is the payload of the create-review call
type CreateReviewRequest struct {
	Language  string `json:"language" binding:"required,max=10"`
	CompanyID string `json:"companyId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	FullName  string `json:"fullName" binding:"required,max=100"`
	Subject   string `json:"subject" binding:"required,max=200"`
	Feedback  string `json:"feedback" binding:"required,max=5000"`
}

// Review is a stored company review
type Review struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Rating    int    `json:"rating"`
	FullName  string `json:"fullName"`
	Subject   string `json:"subject"`
	Feedback  string `json:"feedback"`
}
