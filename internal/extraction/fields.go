package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// UnknownName is reported when no line of the document looks like a person's name
const UnknownName = "Unknown"

const (
	// nameSearchLines is how many non-empty leading lines are checked for a name
	nameSearchLines = 5
	maxNameLength   = 50
	// maxStatedYears excludes numbers that are clearly not a years-of-experience claim
	maxStatedYears = 50
	// earliestRangeYear is the first start year counted in employment date ranges
	earliestRangeYear = 1990
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	namePattern  = regexp.MustCompile(`^[A-Z][a-z]+(\s[A-Z][a-z]+)+`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:location|address|based in)[:\s]+([A-Z][a-z]+(?:,?\s*[A-Z]{2}\b)?)`),
		regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z]{2}\s*\d{5})`),
		regexp.MustCompile(`\b([A-Z][a-z]+,\s*[A-Z]{2})\b`),
	}

	statedYearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)experience[:\s]+(\d+)\+?\s*years?`),
	}
	yearRangePattern = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current|now)`)
)

// ExtractEmail returns the first email address in text, or ""
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone returns the first phone-number-shaped string in text, or ""
func ExtractPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// ExtractName returns the first of the leading lines that looks like "Firstname Lastname".
// The very first line only has to be short; the following ones must also be longer than three characters.
func ExtractName(text string) string {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return UnknownName
	}

	if first := lines[0]; utf8.RuneCountInString(first) < maxNameLength && namePattern.MatchString(first) {
		return first
	}

	for i := 0; i < min(nameSearchLines, len(lines)); i++ {
		line := lines[i]
		n := utf8.RuneCountInString(line)
		if n > 3 && n < maxNameLength && namePattern.MatchString(line) {
			return line
		}
	}
	return UnknownName
}

// ExtractLocation returns the first "Location: City" style mention or "City, ST" pair, or ""
func ExtractLocation(text string) string {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ExtractYearsExperience estimates total experience as the largest stated "N years experience"
// (below 50) plus the length of every date range such as "2018 - 2021" or "2019 - present".
// Ranges must start in 1990 or later and must not end before they start.
func ExtractYearsExperience(text string, now time.Time) int {
	stated := 0
	for _, p := range statedYearsPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > stated && n < maxStatedYears {
				stated = n
			}
		}
	}

	spans := 0
	for _, m := range yearRangePattern.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end, ok := rangeEnd(m[2], now)
		if !ok {
			continue
		}
		if start >= earliestRangeYear && end >= start {
			spans += end - start
		}
	}

	return stated + spans
}

func rangeEnd(raw string, now time.Time) (int, bool) {
	switch strings.ToLower(raw) {
	case "present", "current", "now":
		return now.Year(), true
	}
	end, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return end, true
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
