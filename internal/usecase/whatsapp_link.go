package usecase

import (
	"net/url"
	"regexp"
	"strings"

	"seller-marketplace/internal/domain"
)

// E.164-ish: plus sign, then up to 15 digits, no leading zero.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits and prepends a plus sign.
func NormalizePhone(phone string) string {
	return "+" + nonDigits.ReplaceAllString(phone, "")
}

// BuildWhatsAppLink normalizes and validates a phone number and returns a
// wa.me deep link carrying the optional prefilled text. Pure string
// construction; no outbound calls are made.
func BuildWhatsAppLink(phone, text string) (link, normalized string, err error) {
	if phone == "" {
		return "", "", domain.ErrInvalidArgument
	}
	normalized = NormalizePhone(phone)
	if !phonePattern.MatchString(normalized) {
		return "", "", domain.ErrInvalidArgument
	}

	link = "https://wa.me/" + strings.TrimPrefix(normalized, "+")
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link, normalized, nil
}
