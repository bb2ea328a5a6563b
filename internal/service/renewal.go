package service

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// ExpiringWindowDays is the renewal window: a card whose countdown has
// dropped to this many days (or below) shows up in the "expiring" filter
// and gets a WhatsApp nudge.
const ExpiringWindowDays = 30

// NextRenewal returns the end of the subscription period, one year after
// the subscription start.
func NextRenewal(start time.Time) time.Time {
	return start.AddDate(1, 0, 0)
}

// DaysUntilRenewal is the whole-day countdown to the next renewal,
// rounded up. It goes negative once the renewal date has passed.
func DaysUntilRenewal(start, now time.Time) int {
	return int(math.Ceil(NextRenewal(start).Sub(now).Hours() / 24))
}

// IsExpiring reports whether the renewal countdown has entered the window.
func IsExpiring(start, now time.Time) bool {
	return DaysUntilRenewal(start, now) <= ExpiringWindowDays
}

// WhatsAppReminderLink builds the wa.me deep link with the prefilled
// renewal message for a card holder. Purely URL construction; opening it
// is the client's business.
func WhatsAppReminderLink(phone, name string) string {
	msg := fmt.Sprintf("Bonjour %s, votre abonnement Jamaney Card arrive à expiration. Souhaitez-vous le renouveler ?", name)
	escaped := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(phone), escaped)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
