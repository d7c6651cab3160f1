package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"plain", "Contact: jane.doe@example.com.", "jane.doe@example.com"},
		{"plus addressing", "j+jobs@mail.example.co.uk is best", "j+jobs@mail.example.co.uk"},
		{"first of several", "a@b.io, c@d.io", "a@b.io"},
		{"none", "no address here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractEmail(tt.text))
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"international", "Call +1 555-123-4567 today", "+1 555-123-4567"},
		{"parenthesized area code", "Phone: (555) 123-4567", "(555) 123-4567"},
		{"dotted", "555.123.4567", "555.123.4567"},
		{"none", "call me maybe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractPhone(tt.text))
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"first line", "Jane Doe\nSoftware Engineer", "Jane Doe"},
		{"blank lines skipped", "\n\n  Mary Ann Smith  \nBerlin", "Mary Ann Smith"},
		{"heading before name", "RESUME\nJohn Smith\nDeveloper", "John Smith"},
		{"short first line accepted", "Jo Li\nEngineer", "Jo Li"},
		{"only the first five lines", "CV\nA\nB\nC\nD\nJohn Smith", UnknownName},
		{"too long", "Jane Doe Who Has An Extremely Long Heading Line Here Too", UnknownName},
		{"lower case", "curriculum vitae", UnknownName},
		{"empty", "", UnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractName(tt.text))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"labelled city", "Location: Berlin", "Berlin"},
		{"based in with state", "Based in Austin, TX", "Austin, TX"},
		{"address with zip", "Address: Portland, OR 97201", "Portland, OR"},
		{"city and zip", "Jane Doe\n12 Main St\nSpringfield, IL 62701", "Springfield, IL 62701"},
		{"bare city and state", "Jane Doe\nSeattle, WA\n", "Seattle, WA"},
		{"lower case value", "Location: remote", "remote"},
		{"upper case keyword and value", "LOCATION: BERLIN", "BERLIN"},
		{"trailing word is not a state", "Location: Berlin Germany", "Berlin"},
		{"none", "no place mentioned", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractLocation(tt.text))
		})
	}
}

func TestExtractYearsExperience(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"stated", "5 years of experience", 5},
		{"stated after label", "Experience: 7+ years", 7},
		{"largest stated wins", "10 years of experience, 5 years experience", 10},
		{"implausible stated ignored", "over 60 years experience", 0},
		{"ranges are summed", "Acme 2018 - 2021\nBeta 2021 - present", 8},
		{"stated plus ranges", "3 years experience. 2020-2022", 5},
		{"en dash and current", "2019 – Current", 7},
		{"ranges before 1990 ignored", "1985 - 1995", 0},
		{"reversed range ignored", "2022 - 2019", 0},
		{"nothing", "fresh graduate", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractYearsExperience(tt.text, now))
		})
	}
}
