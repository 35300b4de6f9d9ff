package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing free-form dates from imports.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDate parses a calendar date and drops any time-of-day component.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, NewValidationError(field, "is required")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return DateOf(parsed), nil
		}
	}
	return time.Time{}, NewValidationError(field, "is not a valid date: "+value)
}

// DateOf truncates t to midnight UTC of its own calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseAmount parses a non-negative monetary amount.
// Separators follow these rules:
//   - when both "." and "," appear, the last one is the decimal separator
//     and the other groups thousands ("1.250,75", "1,250.75");
//   - a separator that appears more than once groups thousands
//     ("1.500.000", "1,500,000");
//   - a lone separator followed by exactly three digits groups thousands
//     ("15.000", "1,000"), any other lone separator is the decimal point
//     ("12.5", "12,50").
func ParseAmount(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "Rp"))
	if value == "" {
		return decimal.Zero, NewValidationError(field, "is required")
	}
	amount, err := decimal.NewFromString(normalizeSeparators(value))
	if err != nil {
		return decimal.Zero, NewValidationError(field, "is not a number: "+value)
	}
	if amount.IsNegative() {
		return decimal.Zero, NewValidationError(field, "must not be negative")
	}
	return amount.Round(2), nil
}

func normalizeSeparators(value string) string {
	lastComma := strings.LastIndex(value, ",")
	lastDot := strings.LastIndex(value, ".")
	switch {
	case lastComma < 0 && lastDot < 0:
		return value
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			value = strings.ReplaceAll(value, ".", "")
			return strings.Replace(value, ",", ".", 1)
		}
		return strings.ReplaceAll(value, ",", "")
	}

	separator, last := ".", lastDot
	if lastComma >= 0 {
		separator, last = ",", lastComma
	}
	if strings.Count(value, separator) > 1 || len(value)-last-1 == 3 {
		return strings.ReplaceAll(value, separator, "")
	}
	return strings.Replace(value, separator, ".", 1)
}

// ParseQuantity parses a positive integer quantity.
func ParseQuantity(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, NewValidationError(field, "is required")
	}
	quantity, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewValidationError(field, "is not an integer: "+value)
	}
	if quantity < 1 {
		return 0, NewValidationError(field, "must be a positive integer")
	}
	return quantity, nil
}
