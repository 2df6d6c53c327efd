package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spec-kit/employee-service/internal/domain"
)

var titleCaser = cases.Title(language.Und)

// normalizeName title-cases each word of an employee name: "john doe" becomes
// "John Doe" and "JOHN DOE" becomes "John Doe".
func normalizeName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func normalizeSalary(d decimal.Decimal) decimal.Decimal {
	return d.Round(domain.SalaryPlaces)
}
