// Package sanitize masks prospect contact data before it reaches the logs.
// Outreach runs against real patient leads, so raw phone numbers and email
// addresses must never appear in log output.
package sanitize

import "strings"

// Phone masks a phone number, keeping the first three and last two digits.
func Phone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return phone[:3] + strings.Repeat("*", len(phone)-5) + phone[len(phone)-2:]
}

// Email masks the local part of an email address, keeping at most two
// leading characters and the full domain.
func Email(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "[email]"
	}
	keep := 2
	if at <= 2 {
		keep = 1
	}
	return email[:keep] + "***" + email[at:]
}
