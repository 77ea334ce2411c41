package orchestrator

import (
	"net/url"
	"strings"
)

// fallbackNumber keeps the handoff affordance working on unconfigured
// demo deployments.
const fallbackNumber = "5490000000000"

// HandoffLink builds a pre-filled WhatsApp deep link for routing the
// conversation to a human channel. Everything but digits is stripped
// from the configured number.
func HandoffLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		digits = fallbackNumber
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}
