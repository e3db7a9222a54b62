package entity

import (
	"strings"
	"unicode"

	errs "github.com/perna2k6/pernateste/internal/domain/error"
)

// CheckoutForm carries the buyer details submitted at checkout together with
// the selected plan. Price is in minor currency units exactly as the plan
// advertises it.
type CheckoutForm struct {
	Name      string
	Email     string
	Document  string
	Phone     string
	PlanCode  string
	PlanTitle string
	Price     int64
	UserID    *uint64
}

// Validate checks every field and collects per-field messages so the
// presentation layer can highlight individual inputs. Returns a
// *errs.ValidationError wrapping ErrValidation when anything fails.
func (f *CheckoutForm) Validate() error {
	fields := map[string]string{}

	if len(strings.TrimSpace(f.Name)) < 2 {
		fields["name"] = "name must be at least 2 characters"
	}
	if !isValidEmail(f.Email) {
		fields["email"] = "email address is invalid"
	}
	if len(digitsOf(f.Document)) != 11 {
		fields["document"] = "document must contain exactly 11 digits"
	}
	if len(digitsOf(f.Phone)) < 10 {
		fields["phone"] = "phone must contain at least 10 digits"
	}
	if strings.TrimSpace(f.PlanCode) == "" {
		fields["plan"] = "plan code is required"
	}
	if strings.TrimSpace(f.PlanTitle) == "" {
		fields["title"] = "plan title is required"
	}
	if f.Price <= 0 {
		fields["price"] = "price must be a positive amount in cents"
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

// NormalizedDocument returns the national tax id with punctuation stripped
func (f *CheckoutForm) NormalizedDocument() string {
	return digitsOf(f.Document)
}

// NormalizedPhone returns the phone number with punctuation stripped
func (f *CheckoutForm) NormalizedPhone() string {
	return digitsOf(f.Phone)
}

// digitsOf strips everything but digits, tolerating formatted input like
// "123.456.789-01" or "(11) 99999-8888".
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isValidEmail checks the minimal local@domain.tld shape. Full RFC parsing is
// the gateway's problem; this only blocks obviously broken input.
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
