package checkout

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError lists the invalid fields of a wizard step.
type ValidationError struct {
	Step   Step
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return fmt.Sprintf("%s: %s", e.Step, strings.Join(parts, "; "))
}

type fieldErrors map[string]string

func (f fieldErrors) required(name, value string) {
	if strings.TrimSpace(value) == "" {
		f[name] = "is required"
	}
}

func (f fieldErrors) digits(name, value string, n int) {
	if !isDigits(strings.TrimSpace(value), n) {
		f[name] = fmt.Sprintf("must be exactly %d digits", n)
	}
}

func (f fieldErrors) err(step Step) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Step: step, Fields: f}
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateAddress(f Form) error {
	errs := fieldErrors{}
	errs.required("name", f.Name)
	errs.required("address", f.Address)
	errs.required("city", f.City)
	errs.required("state", f.State)
	errs.digits("pincode", f.Pincode, 6)
	return errs.err(StepCollectingAddress)
}

func validateIdentity(f Form) error {
	errs := fieldErrors{}
	errs.digits("phone", f.Phone, 10)
	if email := strings.TrimSpace(f.Email); email != "" && !strings.Contains(email, "@") {
		errs["email"] = "is not a valid email address"
	}
	return errs.err(StepVerifyingIdentity)
}

func validateSchedule(f Form) error {
	errs := fieldErrors{}
	if f.DurationMonths < 0 {
		errs["durationMonths"] = "must be at least 1"
	}
	return errs.err(StepScheduling)
}

func validatePayment(f Form) error {
	errs := fieldErrors{}
	if !f.PaymentMethod.Valid() {
		errs["paymentMethod"] = "must be one of card, upi or cod"
	}
	return errs.err(StepPaying)
}
