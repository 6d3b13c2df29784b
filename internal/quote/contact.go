package quote

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/coverlane/coverlane/internal/domain"
)

// ValidateContact checks the detailed form the same way Validate does,
// collecting every failure. Zip code, coverage amount and additional info
// are optional.
func ValidateContact(lead domain.ContactLead) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(lead.FirstName) == "" {
		fieldErrors["firstName"] = "First name is required"
	}
	if strings.TrimSpace(lead.LastName) == "" {
		fieldErrors["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(lead.Phone) == "" {
		fieldErrors["phone"] = "Phone number is required"
	}
	email := strings.TrimSpace(lead.Email)
	if email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		fieldErrors["email"] = "Email address is not valid"
	}
	if strings.TrimSpace(lead.InsuranceType) == "" {
		fieldErrors["insuranceType"] = "Insurance type is required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// SubmitContact validates the detailed form and emails the operator inbox
// through the same sender as Submit.
func (i *Intake) SubmitContact(ctx context.Context, lead domain.ContactLead) Result {
	if fieldErrors := ValidateContact(lead); fieldErrors != nil {
		return Result{
			Success:     false,
			Message:     "Please correct the highlighted fields.",
			FieldErrors: fieldErrors,
		}
	}

	subject := fmt.Sprintf("New Insurance Quote Request - %s", lead.InsuranceType)
	body := fmt.Sprintf(`<h2>New Insurance Quote Request</h2>
<p><strong>Insurance Type:</strong> %s</p>
<p><strong>Name:</strong> %s %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>ZIP Code:</strong> %s</p>
<p><strong>Desired Coverage Amount:</strong> $%s</p>
<p><strong>Additional Information:</strong></p>
<p>%s</p>`,
		html.EscapeString(lead.InsuranceType),
		html.EscapeString(lead.FirstName),
		html.EscapeString(lead.LastName),
		html.EscapeString(lead.Email),
		html.EscapeString(lead.Phone),
		html.EscapeString(lead.ZipCode),
		html.EscapeString(lead.CoverageAmount),
		html.EscapeString(lead.AdditionalInfo))

	if err := i.sender.Send(ctx, subject, body); err != nil {
		zap.L().Error("contact notification delivery failed",
			zap.String("insurance_type", lead.InsuranceType), zap.Error(err))
		return Result{
			Success: false,
			Message: "Sorry, there was an error submitting your request. Please try again or contact us directly.",
		}
	}

	return Result{
		Success: true,
		Message: "Thank you for your interest! We will contact you shortly to discuss your insurance needs.",
	}
}
