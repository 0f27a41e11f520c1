package clientapp

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gym_backend/internal/models"
)

var currencyPrinter = message.NewPrinter(language.Spanish)

// FormatCurrency renders an amount as "$" plus the es-grouped number, e.g. $150.000.
func FormatCurrency(amount float64) string {
	if amount == math.Trunc(amount) {
		return currencyPrinter.Sprintf("$%d", int64(amount))
	}
	return currencyPrinter.Sprintf("$%.2f", amount)
}

// FormatDate renders a date as YYYY-MM-DD, or "-" when unset.
func FormatDate(d *models.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.String()
}
