package pricing

import (
	"fmt"
	"strings"

	"pricelens/pkg/domain"
)

// Limits configures the plausibility band for record validation.
type Limits struct {
	// MaxValidPrice is the hard upper bound; records above it are rejected
	// outright as implausible.
	MaxValidPrice float64
	// WarnPrice is the softer threshold above which Check warns without
	// rejecting.
	WarnPrice float64
}

// DefaultLimits returns the stock validation limits.
func DefaultLimits() Limits {
	return Limits{MaxValidPrice: 1_000_000, WarnPrice: 100_000}
}

// Diagnosis is the result of the human-readable record check: hard issues
// that make the record invalid and soft warnings that do not.
type Diagnosis struct {
	IsValid  bool     `json:"is_valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// Validator accepts or rejects standardized records against minimum-quality
// rules. It is a pure predicate; neither Valid nor Check mutates the record.
type Validator struct {
	limits Limits
	// knownCurrencies holds the codes from the injected symbol table; an
	// unrecognized code is a warning, not a rejection.
	knownCurrencies map[string]struct{}
}

// NewValidator creates a Validator with the given limits and currency table.
func NewValidator(limits Limits, currencies []CurrencySymbol) *Validator {
	known := make(map[string]struct{}, len(currencies))
	for _, cs := range currencies {
		known[cs.Code] = struct{}{}
	}

	return &Validator{limits: limits, knownCurrencies: known}
}

// Valid reports whether the record satisfies all minimum-quality rules:
// product name, source URL and price present, price within (0, MaxValidPrice]
// and the URL using an http(s) scheme.
func (v *Validator) Valid(rec domain.Record) bool {
	return len(v.issues(rec)) == 0
}

// Check is the diagnostic variant of Valid: it returns every violated rule
// as a human-readable issue plus soft warnings (unusually high price,
// unrecognized currency code).
func (v *Validator) Check(rec domain.Record) Diagnosis {
	d := Diagnosis{
		Issues:   v.issues(rec),
		Warnings: []string{},
	}
	d.IsValid = len(d.Issues) == 0

	if rec.Price > v.limits.WarnPrice && rec.Price <= v.limits.MaxValidPrice {
		d.Warnings = append(d.Warnings, fmt.Sprintf("price %.2f is unusually high", rec.Price))
	}
	if rec.Currency != "" {
		if _, ok := v.knownCurrencies[rec.Currency]; !ok {
			d.Warnings = append(d.Warnings, fmt.Sprintf("unrecognized currency code %q", rec.Currency))
		}
	}

	return d
}

func (v *Validator) issues(rec domain.Record) []string {
	issues := []string{}

	if strings.TrimSpace(rec.ProductName) == "" {
		issues = append(issues, "product name is missing")
	}
	if strings.TrimSpace(rec.Website) == "" {
		issues = append(issues, "source URL is missing")
	} else if !strings.HasPrefix(rec.Website, "http://") && !strings.HasPrefix(rec.Website, "https://") {
		issues = append(issues, "source URL must start with http:// or https://")
	}
	if rec.Price <= 0 {
		issues = append(issues, "price must be greater than zero")
	} else if rec.Price > v.limits.MaxValidPrice {
		issues = append(issues, fmt.Sprintf("price %.2f exceeds the plausible maximum of %.0f",
			rec.Price, v.limits.MaxValidPrice))
	}

	return issues
}
