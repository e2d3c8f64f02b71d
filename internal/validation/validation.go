// Package validation checks prospect intake payloads before they enter the
// campaign engine.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFieldLength = 256

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// FieldError is a single validation failure tied to a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors collects every failure found in one request so the caller can
// report them all at once.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any field failed.
func (e FieldErrors) HasErrors() bool { return len(e) > 0 }

// ProspectValidator accumulates field errors for a prospect intake request.
type ProspectValidator struct {
	errs FieldErrors
}

// NewProspectValidator creates an empty validator.
func NewProspectValidator() *ProspectValidator {
	return &ProspectValidator{}
}

// IsValid reports whether every check so far passed.
func (v *ProspectValidator) IsValid() bool { return len(v.errs) == 0 }

// Errors returns the accumulated failures.
func (v *ProspectValidator) Errors() FieldErrors { return v.errs }

func (v *ProspectValidator) fail(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// ValidateID checks the prospect identifier: required, bounded, printable.
func (v *ProspectValidator) ValidateID(id string) {
	if strings.TrimSpace(id) == "" {
		v.fail("id", "is required")
		return
	}
	v.checkText("id", id)
}

// ValidateName checks the optional name fields.
func (v *ProspectValidator) ValidateName(firstName, lastName string) {
	v.checkText("first_name", firstName)
	v.checkText("last_name", lastName)
}

// ValidateContact checks phone and email. At least one contact channel must
// be present for outreach to work.
func (v *ProspectValidator) ValidateContact(phone, email string) {
	if strings.TrimSpace(phone) == "" && strings.TrimSpace(email) == "" {
		v.fail("phone", "phone or email is required")
		return
	}
	if phone != "" && !phonePattern.MatchString(stripPhoneFormatting(phone)) {
		v.fail("phone", "must be a valid phone number in E.164 format")
	}
	if email != "" && !emailPattern.MatchString(email) {
		v.fail("email", "must be a valid email address")
	}
}

// ValidateCampaign checks the requested start campaign against the catalog.
func (v *ProspectValidator) ValidateCampaign(campaign string, allowed []string) {
	for _, a := range allowed {
		if campaign == a {
			return
		}
	}
	v.fail("campaign", fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

// checkText enforces the length bound and rejects control characters other
// than whitespace.
func (v *ProspectValidator) checkText(field, value string) {
	if utf8.RuneCountInString(value) > maxFieldLength {
		v.fail(field, fmt.Sprintf("must be at most %d characters", maxFieldLength))
		return
	}
	for _, r := range value {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			v.fail(field, "contains invalid control characters")
			return
		}
	}
}

// stripPhoneFormatting removes separators people commonly type into phone
// fields so the E.164 check sees digits only.
func stripPhoneFormatting(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(phone)
}

// SanitizePhoneNumber normalizes a phone number for storage: digits only,
// with a leading + preserved.
func SanitizePhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if strings.HasPrefix(phone, "+") && b.Len() > 0 {
		return "+" + b.String()
	}
	return b.String()
}
