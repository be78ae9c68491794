package extraction

import "strings"

// extractContact takes the first email, phone and street-address matches.
// Phone candidates must pass the configured digit-count bounds; the matched
// formatting is preserved.
func (e *Engine) extractContact(text string) ContactInfo {
	info := ContactInfo{
		Email:   e.lib.EmailPattern.FindString(text),
		Address: strings.TrimSpace(e.lib.AddressPattern.FindString(text)),
	}

	for _, pattern := range e.lib.PhonePatterns {
		for _, candidate := range pattern.FindAllString(text, -1) {
			if e.phoneDigitsOK(candidate) {
				info.Phone = strings.TrimSpace(candidate)
				return info
			}
		}
	}
	return info
}

func (e *Engine) phoneDigitsOK(candidate string) bool {
	digits := 0
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= e.lib.Limits.MinPhoneDigits && digits <= e.lib.Limits.MaxPhoneDigits
}
