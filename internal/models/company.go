package models

// CreateCompanyRequest is the payload of the create-company call. It is
// built once from a form snapshot and never mutated afterwards.
type CreateCompanyRequest struct {
	Language    string `json:"language" binding:"required,max=10"`
	Name        string `json:"name" binding:"required,max=200"`
	Location    string `json:"location" binding:"required,max=200"`
	City        string `json:"city" binding:"required,max=100"`
	FoundedOn   string `json:"foundedOn" binding:"required,max=32"`
	CompanyLogo string `json:"companyLogo" binding:"required,max=500"`
}

// Company is a company record as listed by the dev server
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	City        string `json:"city"`
	FoundedOn   string `json:"foundedOn"`
	CompanyLogo string `json:"companyLogo"`
	LogoURL     string `json:"logoUrl,omitempty"`
}
