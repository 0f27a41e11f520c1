package clientapp

import (
	"fmt"
	"net/url"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/pkg/utils"
)

// DefaultCountryCode is prefixed to local phone numbers.
const DefaultCountryCode = "57"

// LinkOptions controls where reminder links point.
type LinkOptions struct {
	CountryCode string
	// FixedNumber, when set, replaces every client's phone with this number.
	FixedNumber string
}

// ReminderLink is one wa.me link ready to open.
type ReminderLink struct {
	Reminder models.Reminder
	Number   string
	URL      string
}

// ReminderMessage is the WhatsApp text sent to a client before the due date.
func ReminderMessage(r models.Reminder) string {
	return fmt.Sprintf("Hola %s 👋\nTe recordamos que tu pago del gimnasio vence el %s.\n¡Te esperamos! 💪",
		r.Nombre, r.FechaVencimiento.String())
}

// whatsappNumber keeps the digits and adds the country code to local numbers.
// Numbers longer than 10 digits are taken to include it already.
func whatsappNumber(phone, countryCode string) string {
	digits := utils.OnlyDigits(phone)
	if digits == "" {
		return ""
	}
	if len(digits) > 10 || countryCode == "" {
		return digits
	}
	return countryCode + digits
}

// BuildReminderLinks returns one link per reminder with a usable number.
func BuildReminderLinks(reminders []models.Reminder, opts LinkOptions) []ReminderLink {
	cc := opts.CountryCode
	if cc == "" {
		cc = DefaultCountryCode
	}

	links := make([]ReminderLink, 0, len(reminders))
	for _, r := range reminders {
		phone := r.Telefono
		if opts.FixedNumber != "" {
			phone = opts.FixedNumber
		}
		number := whatsappNumber(phone, cc)
		if number == "" {
			continue
		}
		text := strings.ReplaceAll(url.QueryEscape(ReminderMessage(r)), "+", "%20")
		links = append(links, ReminderLink{
			Reminder: r,
			Number:   number,
			URL:      "https://wa.me/" + number + "?text=" + text,
		})
	}
	return links
}
