package extraction

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// titleSeparators split browser-title strings like "Acme | Home" or
// "Acme - Widgets for Everyone" down to their first segment.
var titleSeparators = []string{" | ", " - ", " – ", " — ", " :: "}

// extractName runs the name fallback chain: each configured pattern in
// order, then a name derived from the source URL's domain.
func (e *Engine) extractName(text, sourceURL string) string {
	chain := make([]strategy, 0, len(e.lib.NamePatterns)+1)
	for _, p := range e.lib.NamePatterns {
		p := p
		chain = append(chain, func() (string, bool) { return e.nameFromPattern(text, p) })
	}
	chain = append(chain, func() (string, bool) { return e.nameFromDomain(sourceURL) })
	return firstOf(chain...)
}

func (e *Engine) nameFromPattern(text string, p *regexp.Regexp) (string, bool) {
	m := p.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	name := cleanName(m[1])
	if !e.nameLengthOK(name) {
		return "", false
	}
	return name, true
}

// nameFromDomain derives a display name from the host, e.g.
// "https://www.acme-widgets.com/about" becomes "Acme Widgets".
func (e *Engine) nameFromDomain(sourceURL string) (string, bool) {
	host := hostOf(sourceURL)
	if host == "" {
		return "", false
	}
	host = strings.TrimPrefix(host, "www.")
	label, _, _ := strings.Cut(host, ".")
	parts := strings.FieldsFunc(label, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		parts[i] = titleWord(part)
	}
	name := strings.Join(parts, " ")
	if !e.nameLengthOK(name) {
		return "", false
	}
	return name, true
}

func hostOf(sourceURL string) string {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return ""
	}
	if !strings.Contains(sourceURL, "://") {
		sourceURL = "https://" + sourceURL
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (e *Engine) nameLengthOK(name string) bool {
	return len(name) >= e.lib.Limits.MinNameLength && len(name) <= e.lib.Limits.MaxNameLength
}

// cleanName trims whitespace and stray punctuation and keeps only the first
// title segment.
func cleanName(name string) string {
	for _, sep := range titleSeparators {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	return strings.Trim(name, " \t\n.,:;!?\"'")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// extractDescription returns the first mission/about span that matches.
func (e *Engine) extractDescription(text string) string {
	for _, p := range e.lib.DescriptionPatterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			if desc := strings.TrimSpace(m[1]); desc != "" {
				return desc
			}
		}
	}
	return ""
}

// extractAudience tries explicit "for ..." spans before falling back to
// demographic cue words.
func (e *Engine) extractAudience(text string) string {
	return firstOf(
		func() (string, bool) {
			for _, p := range e.lib.AudiencePatterns {
				if m := p.FindStringSubmatch(text); len(m) > 1 {
					if span := strings.Trim(m[1], " \t.,:;!?"); span != "" {
						return span, true
					}
				}
			}
			return "", false
		},
		func() (string, bool) {
			lower := strings.ToLower(text)
			for _, seg := range e.lib.AudienceSegments {
				if anyToken(lower, seg.Cues) {
					return seg.Label, true
				}
			}
			return "", false
		},
	)
}
