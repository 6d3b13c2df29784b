package domain

// QuoteLead is a lead-capture submission. Leads are never persisted; they
// are validated and forwarded to the operator inbox within the request.
type QuoteLead struct {
	FullName      string `json:"fullName" form:"fullName"`
	PhoneNumber   string `json:"phoneNumber" form:"phoneNumber"`
	Phone         string `json:"phone" form:"phone"`
	Email         string `json:"email" form:"email"`
	InsuranceType string `json:"insuranceType" form:"insuranceType"`
}

// PhoneValue returns the phone number regardless of which JSON key the
// client used.
func (q QuoteLead) PhoneValue() string {
	if q.PhoneNumber != "" {
		return q.PhoneNumber
	}
	return q.Phone
}
