package domain

// ContactLead is the detailed quote-request form submission carrying
// coverage preferences. Like QuoteLead it is never persisted.
type ContactLead struct {
	FirstName      string `json:"firstName" form:"firstName"`
	LastName       string `json:"lastName" form:"lastName"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	ZipCode        string `json:"zipCode" form:"zipCode"`
	CoverageAmount string `json:"coverageAmount" form:"coverageAmount"`
	AdditionalInfo string `json:"additionalInfo" form:"additionalInfo"`
	InsuranceType  string `json:"insuranceType" form:"insuranceType"`
}
