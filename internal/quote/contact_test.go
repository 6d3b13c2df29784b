package quote

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/coverlane/coverlane/internal/domain"
)

func validContactLead() domain.ContactLead {
	return domain.ContactLead{
		FirstName:      "Jamie",
		LastName:       "Rivera",
		Email:          "jamie@example.com",
		Phone:          "555-0147",
		ZipCode:        "07302",
		CoverageAmount: "250000",
		AdditionalInfo: "Two dependents, looking for a 20 year term.",
		InsuranceType:  "TERM LIFE INSURANCE",
	}
}

func TestSubmitContactValid(t *testing.T) {
	sender := &fakeSender{}
	res := NewIntake(sender).SubmitContact(context.Background(), validContactLead())
	if !res.Success {
		t.Fatalf("submit failed: %+v", res)
	}
	if sender.sent != 1 {
		t.Errorf("sent = %d, want 1", sender.sent)
	}
	if !strings.Contains(sender.subject, "TERM LIFE INSURANCE") {
		t.Errorf("subject = %q", sender.subject)
	}
	for _, want := range []string{"Jamie Rivera", "07302", "$250000", "Two dependents"} {
		if !strings.Contains(sender.body, want) {
			t.Errorf("body missing %q: %s", want, sender.body)
		}
	}
}

func TestSubmitContactCollectsAllFieldErrors(t *testing.T) {
	sender := &fakeSender{}
	res := NewIntake(sender).SubmitContact(context.Background(), domain.ContactLead{Email: "bad"})
	if res.Success {
		t.Fatal("invalid lead must not succeed")
	}
	if sender.sent != 0 {
		t.Error("invalid lead must not send email")
	}
	for _, key := range []string{"firstName", "lastName", "phone", "email", "insuranceType"} {
		if res.FieldErrors[key] == "" {
			t.Errorf("missing field error for %s", key)
		}
	}
	if len(res.FieldErrors) != 5 {
		t.Errorf("field errors = %v, want 5 entries", res.FieldErrors)
	}
}

func TestSubmitContactOptionalFields(t *testing.T) {
	lead := validContactLead()
	lead.ZipCode = ""
	lead.CoverageAmount = ""
	lead.AdditionalInfo = ""
	sender := &fakeSender{}
	res := NewIntake(sender).SubmitContact(context.Background(), lead)
	if !res.Success {
		t.Fatalf("optional fields must not be required: %+v", res)
	}
}

func TestSubmitContactDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down: auth 535 bad credentials")}
	res := NewIntake(sender).SubmitContact(context.Background(), validContactLead())
	if res.Success {
		t.Fatal("delivery failure must not report success")
	}
	if strings.Contains(res.Message, "535") {
		t.Error("provider internals must not leak to the caller")
	}
	if res.FieldErrors != nil {
		t.Error("delivery failure is not a validation failure")
	}
}
