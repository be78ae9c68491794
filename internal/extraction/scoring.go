package extraction

import (
	"sort"
	"strings"
)

// rankKeywords tokenizes the text into lowercase alphabetic words, drops
// stop words and rare words, and ranks the rest by descending frequency with
// ties broken by first appearance.
func (e *Engine) rankKeywords(text string) []string {
	words := e.lib.WordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		if len(w) < e.lib.Limits.MinKeywordLength || e.lib.StopWords[w] {
			continue
		}
		if _, ok := counts[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	type ranked struct {
		word  string
		count int
		first int
	}
	candidates := make([]ranked, 0, len(counts))
	for w, c := range counts {
		if c >= e.lib.Limits.MinKeywordCount {
			candidates = append(candidates, ranked{word: w, count: c, first: firstSeen[w]})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].first < candidates[j].first
	})

	if len(candidates) > e.lib.Limits.MaxKeywords {
		candidates = candidates[:e.lib.Limits.MaxKeywords]
	}
	if len(candidates) == 0 {
		return nil
	}
	keywords := make([]string, len(candidates))
	for i, c := range candidates {
		keywords[i] = c.word
	}
	return keywords
}

// toneOrder fixes the scan order of tone categories. The order never decides
// the winner (a tie resolves to Unknown); it only keeps scanning
// deterministic.
var toneOrder = []Tone{ToneProfessional, ToneCasual, ToneFriendly, ToneFormal}

// classifyTone picks the tone whose cue-word set has strictly the highest
// number of members present in the text. Any tie, including all-zero,
// resolves to Unknown.
func (e *Engine) classifyTone(text string) Tone {
	lower := strings.ToLower(text)

	best := ToneUnknown
	bestCount := 0
	tied := false
	for _, tone := range toneOrder {
		count := countTokens(lower, e.lib.ToneKeywords[string(tone)])
		switch {
		case count > bestCount:
			best = tone
			bestCount = count
			tied = false
		case count == bestCount && count > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return ToneUnknown
	}
	return best
}

// classifyThemes scores every taxonomy category and returns the strongest
// ones, ranked by score with ties broken by taxonomy order.
func (e *Engine) classifyThemes(text string) []string {
	lower := strings.ToLower(text)

	type scored struct {
		theme string
		score int
		order int
	}
	var hits []scored
	for i, theme := range e.lib.ThemeOrder {
		if score := countTokens(lower, e.lib.ThemeKeywords[theme]); score > 0 {
			hits = append(hits, scored{theme: theme, score: score, order: i})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].order < hits[j].order
	})

	if len(hits) > e.lib.Limits.MaxThemes {
		hits = hits[:e.lib.Limits.MaxThemes]
	}
	if len(hits) == 0 {
		return nil
	}
	themes := make([]string, len(hits))
	for i, h := range hits {
		themes[i] = h.theme
	}
	return themes
}
