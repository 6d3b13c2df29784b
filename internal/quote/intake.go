// Package quote validates lead-capture submissions and forwards them to the
// operator inbox. Leads are never persisted.
package quote

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/coverlane/coverlane/config"
	"github.com/coverlane/coverlane/internal/domain"
)

var ErrDelivery = errors.New("quote notification delivery failed")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sender delivers a single notification message. The gomail dialer
// satisfies it in production; tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// SMTPSender sends operator notifications through the configured SMTP relay.
type SMTPSender struct {
	cfg config.SmtpConfig
}

func NewSMTPSender(cfg config.SmtpConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.NotifyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	// gomail has no context support; bound the dial-and-send with a
	// goroutine and honour cancellation ourselves. Two retries on
	// transient relay failures.
	done := make(chan error, 1)
	go func() {
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			if err = d.DialAndSend(m); err == nil {
				done <- nil
				return
			}
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type Intake struct {
	sender Sender
}

func NewIntake(sender Sender) *Intake {
	return &Intake{sender: sender}
}

// Result is the caller-facing outcome of a submission.
type Result struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// Validate checks every field and collects all failures so the form can
// highlight them in one round trip.
func Validate(lead domain.QuoteLead) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(lead.FullName) == "" {
		fieldErrors["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(lead.PhoneValue()) == "" {
		fieldErrors["phoneNumber"] = "Phone number is required"
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

// Submit validates the lead and, when valid, emails the operator inbox.
// The send is awaited so a relay outage surfaces as a delivery failure
// instead of being dropped; relay internals are logged server-side only.
func (i *Intake) Submit(ctx context.Context, lead domain.QuoteLead) Result {
	if fieldErrors := Validate(lead); fieldErrors != nil {
		return Result{
			Success:     false,
			Message:     "Please correct the highlighted fields.",
			FieldErrors: fieldErrors,
		}
	}

	subject := fmt.Sprintf("New Insurance Quote Request - %s", lead.InsuranceType)
	body := fmt.Sprintf(`<h2>New Insurance Quote Request</h2>
<p><strong>Insurance Type:</strong> %s</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>`,
		html.EscapeString(lead.InsuranceType),
		html.EscapeString(lead.FullName),
		html.EscapeString(lead.Email),
		html.EscapeString(lead.PhoneValue()))

	if err := i.sender.Send(ctx, subject, body); err != nil {
		zap.L().Error("quote notification delivery failed",
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
