package skills

import (
	"regexp"
	"sort"
	"strings"
)

// maxPhraseTokens is the longest multi-word skill the extractor looks for
const maxPhraseTokens = 5

// extractStrip removes everything except word characters, whitespace and the
// characters that appear inside skill names such as "node.js", "c#" and "c++".
var extractStrip = regexp.MustCompile(`[^\w\s.#+]`)

// ExtractSkillsFromText finds every dictionary skill mentioned in free text.
// Each token position is tried as the start of a 5..1 token phrase; all hits are kept,
// including overlapping ones, so "ruby on rails" also yields "ruby".
func (d *Dictionary) ExtractSkillsFromText(text string) []string {
	words := extractWords(text)

	d.mu.RLock()
	defer d.mu.RUnlock()

	found := make(map[string]bool)
	for i := range words {
		for n := maxPhraseTokens; n >= 1; n-- {
			if i+n > len(words) {
				continue
			}
			phrase := strings.Join(words[i:i+n], " ")
			if canonical, ok := d.reverse[phrase]; ok {
				found[canonical] = true
			}
		}
	}
	for _, word := range words {
		if canonical, ok := d.reverse[word]; ok {
			found[canonical] = true
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func extractWords(text string) []string {
	cleaned := extractStrip.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)
	words := fields[:0]
	for _, w := range fields {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	return words
}

// SkillFrequency counts whole-word, case-insensitive mentions of a skill in text.
// The skill is normalized first and every synonym of its canonical form is counted too.
func (d *Dictionary) SkillFrequency(text, skill string) int {
	d.mu.RLock()
	canonical := d.normalizeLocked(skill)
	variants := append([]string{canonical}, d.entries[canonical]...)
	d.mu.RUnlock()

	lower := strings.ToLower(text)
	count := 0
	for _, variant := range variants {
		if variant == "" {
			continue
		}
		count += countWholeWord(lower, strings.ToLower(variant))
	}
	return count
}

// countWholeWord counts the non-overlapping occurrences of term in text that start and
// end on an ASCII word boundary, the positions `\bterm\b` matches.
func countWholeWord(text, term string) int {
	count := 0
	for i := 0; i+len(term) <= len(text); {
		idx := strings.Index(text[i:], term)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(term)
		if atWordBoundary(text, start) && atWordBoundary(text, end) {
			count++
			i = end
			continue
		}
		i = start + 1
	}
	return count
}

func atWordBoundary(s string, i int) bool {
	before := i > 0 && isWordByte(s[i-1])
	after := i < len(s) && isWordByte(s[i])
	return before != after
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
