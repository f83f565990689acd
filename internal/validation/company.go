package validation

import "github.com/getmentor/companyforms/internal/form"

// companyInput lists the Add Company checks in the order they run
type companyInput struct {
	CompanyLogo string `form:"companyLogo" validate:"required"`
	CompanyName string `form:"companyName" validate:"notblank"`
	Location    string `form:"location" validate:"notblank"`
	FoundedOn   string `form:"foundedOn" validate:"notblank"`
	City        string `form:"city" validate:"notblank"`
}

var companyOrder = []form.Field{
	form.CompanyLogo,
	form.CompanyName,
	form.Location,
	form.FoundedOn,
	form.City,
}

var companyMessages = map[form.Field]string{
	form.CompanyLogo: "Company logo is required",
	form.CompanyName: "Company name is required",
	form.Location:    "Location is required",
	form.FoundedOn:   "Founded date is required",
	form.City:        "City is required",
}

// ValidateCompany checks an Add Company snapshot. The logo rule only looks
// at whether a storage key is present, not at uploads still in flight.
func ValidateCompany(snap form.Snapshot) Result {
	in := companyInput{
		CompanyLogo: snap.String(form.CompanyLogo),
		CompanyName: snap.String(form.CompanyName),
		Location:    snap.String(form.Location),
		FoundedOn:   snap.String(form.FoundedOn),
		City:        snap.String(form.City),
	}
	return run("company", &in, companyOrder, companyMessages)
}
