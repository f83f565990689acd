package form

// Company form fields
const (
	CompanyLogo        Field = "companyLogo"
	CompanyLogoPreview Field = "companyLogoImage"
	CompanyName        Field = "companyName"
	Location           Field = "location"
	FoundedOn          Field = "foundedOn"
	City               Field = "city"
)

// CompanySchema returns the Add Company form schema. The preview URL of an
// uploaded logo lives beside the logo's storage key but is never submitted.
func CompanySchema() Schema {
	return Schema{
		Name:   "company",
		Fields: []Field{CompanyLogo, CompanyLogoPreview, CompanyName, Location, FoundedOn, City},
		Defaults: map[Field]any{
			CompanyLogo:        "",
			CompanyLogoPreview: "",
			CompanyName:        "",
			Location:           "",
			FoundedOn:          "",
			City:               "",
		},
	}
}
