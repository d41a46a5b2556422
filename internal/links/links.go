// Package links builds the deep links the site hands off to the phone,
// WhatsApp, mail and maps apps.
package links

import (
	"net/url"
	"strings"
)

// Business contact details.
const (
	Phone           = "+919876543210"
	PhoneDisplay    = "+91-98765-43210"
	WhatsAppNumber  = "919876543210"
	WhatsAppMessage = "Hi Kalakruti Associates, I need interior design consultation"
	Email           = "info@kalakrutiassociates.com"
	Address         = "123 Design Plaza, Saheed Nagar, Bhubaneswar, Odisha 751007"
	MapQuery        = "123 Design Plaza Saheed Nagar Bhubaneswar"
)

// Tel returns a tel: link. Formatting characters are stripped.
func Tel(number string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(number) {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return "tel:" + b.String()
}

// WhatsApp returns a wa.me chat link with a prefilled message.
func WhatsApp(number, message string) string {
	digits := strings.TrimPrefix(Tel(number), "tel:")
	digits = strings.TrimPrefix(digits, "+")
	u := "https://wa.me/" + digits
	if message == "" {
		return u
	}
	return u + "?text=" + escapeComponent(message)
}

// Mailto returns a mailto: link.
func Mailto(addr string) string {
	return "mailto:" + strings.TrimSpace(addr)
}

// MapSearch returns a Google Maps search link for a free-text place.
func MapSearch(query string) string {
	return "https://maps.google.com/?q=" + url.QueryEscape(strings.TrimSpace(query))
}

// Business links used across the layout.
var (
	CallHref     = Tel(Phone)
	WhatsAppHref = WhatsApp(WhatsAppNumber, WhatsAppMessage)
	EmailHref    = Mailto(Email)
	MapHref      = MapSearch(MapQuery)
)

// escapeComponent matches the browser's encodeURIComponent for the message
// text: spaces become %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
