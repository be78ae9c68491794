package extraction

import "strings"

// socialPlatformOrder fixes the scan order over the platform set so repeated
// runs behave identically. Each platform fills only its own map key.
var socialPlatformOrder = []string{
	"facebook", "twitter", "instagram", "linkedin", "youtube", "tiktok",
}

// extractSocialLinks finds one profile URL per known platform. It works on
// any text but is most useful on raw markup, where hrefs survive cleaning.
func (e *Engine) extractSocialLinks(text string) map[string]string {
	links := make(map[string]string)
	for _, platform := range socialPlatformOrder {
		pattern, ok := e.lib.SocialPatterns[platform]
		if !ok {
			continue
		}
		if match := pattern.FindString(text); match != "" {
			links[platform] = normalizeLink(match)
		}
	}
	if len(links) == 0 {
		return nil
	}
	return links
}

func normalizeLink(link string) string {
	link = strings.TrimRight(link, "/.")
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	return link
}

// extractColors finds hex color tokens, normalized to lowercase, skipping
// the excluded near-neutral set, deduplicated in first-seen order.
func (e *Engine) extractColors(text string) []string {
	matches := e.lib.HexColorPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var colors []string
	for _, m := range matches {
		color := strings.ToLower(m)
		if seen[color] || e.lib.ExcludedColors[color] {
			continue
		}
		seen[color] = true
		colors = append(colors, color)
		if len(colors) == e.lib.Limits.MaxColors {
			break
		}
	}
	if len(colors) == 0 {
		return nil
	}
	return colors
}
