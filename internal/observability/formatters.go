// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mutlukurt/hirelens/internal/extraction"
	"github.com/mutlukurt/hirelens/internal/ranking"
	"github.com/mutlukurt/hirelens/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed, human-readable summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func joinList(items []string, width int) string {
	if len(items) == 0 {
		return "-"
	}
	return truncate(strings.Join(items, ", "), width)
}

// PrintParsedResume outputs the fields extracted from a resume
func (p *Printer) PrintParsedResume(parsed *extraction.ParsedResume) {
	if parsed == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", orDash(parsed.Name))
	fmt.Fprintf(&sb, "Email:      %s\n", orDash(parsed.Email))
	fmt.Fprintf(&sb, "Phone:      %s\n", orDash(parsed.Phone))
	fmt.Fprintf(&sb, "Location:   %s\n", orDash(parsed.Location))
	fmt.Fprintf(&sb, "Experience: %d years\n", parsed.YearsExperience)
	fmt.Fprintf(&sb, "Skills:     %d found", len(parsed.Skills))
	writeBullets(&sb, parsed.Skills)

	p.printBox("PARSED RESUME", sb.String())
}

// PrintCandidate outputs a stored candidate
func (p *Printer) PrintCandidate(c *types.Candidate) {
	if c == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:         %s\n", c.ID)
	fmt.Fprintf(&sb, "Name:       %s\n", orDash(c.Name))
	fmt.Fprintf(&sb, "Stage:      %s\n", c.Stage)
	fmt.Fprintf(&sb, "Experience: %d years\n", c.YearsExperience)
	fmt.Fprintf(&sb, "Skills:     %s", joinList(c.Skills, 44))

	p.printBox("CANDIDATE", sb.String())
}

// PrintScore outputs a score with its explanation trail and gaps
func (p *Printer) PrintScore(title string, result *ranking.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/100\n\n", result.Score)
	sb.WriteString("Explanations:")
	for _, line := range result.Explanations {
		fmt.Fprintf(&sb, "\n  • %s", line)
	}
	if len(result.Gaps) > 0 {
		sb.WriteString("\n\nGaps:")
		for _, gap := range result.Gaps {
			fmt.Fprintf(&sb, "\n  ⚠ %s", gap)
		}
	}
	fmt.Fprintf(&sb, "\n\nMatched: %s", joinList(result.MatchedSkills, 44))

	p.printBox(title, sb.String())
}

// PrintMatch outputs a stored match
func (p *Printer) PrintMatch(m *types.MatchResult) {
	if m == nil {
		return
	}
	p.PrintScore(fmt.Sprintf("MATCH %s → %s", m.CandidateID, m.JobID), &ranking.Result{
		Score:           m.Score,
		Explanations:    m.Explanations,
		Gaps:            m.Gaps,
		MatchedSkills:   m.MatchedSkills,
		MissingMustHave: m.MissingMustHave,
	})
}

// PrintRanking outputs the top ranked candidates for a job posting
func (p *Printer) PrintRanking(job *types.JobPosting, ranked []ranking.Ranked) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Job: %s\n", job.Title)
	fmt.Fprintf(&sb, "Candidates ranked: %d", len(ranked))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked[i]
		name := r.Candidate.Name
		if name == "" {
			name = r.Candidate.ID
		}
		fmt.Fprintf(&sb, "\n\n#%d  %s\n", i+1, name)
		fmt.Fprintf(&sb, "    Score: %d", r.Result.Score)
		if len(r.Result.MissingMustHave) > 0 {
			fmt.Fprintf(&sb, "\n    Missing: %s", joinList(r.Result.MissingMustHave, 40))
		}
	}

	if len(ranked) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n\n... and %d more candidates", len(ranked)-maxItemsToShow)
	}

	p.printBox("CANDIDATE RANKING", sb.String())
}

// PrintDictionary outputs the canonical skills with their synonym counts
func (p *Printer) PrintDictionary(entries map[string][]string, canonicals []string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills: %d", len(canonicals))
	for _, skill := range canonicals {
		synonyms := entries[skill]
		if len(synonyms) == 0 {
			fmt.Fprintf(&sb, "\n  • %s", skill)
			continue
		}
		fmt.Fprintf(&sb, "\n  • %s (%s)", skill, strings.Join(synonyms, ", "))
	}

	p.printBox("SKILL DICTIONARY", sb.String())
}

// PrintImportSummary outputs the record counts of an import
func (p *Printer) PrintImportSummary(candidates, jobs, matches int) {
	content := fmt.Sprintf("Candidates: %d\nJobs:       %d\nMatches:    %d", candidates, jobs, matches)
	p.printBox("IMPORT COMPLETE", content)
}

func writeBullets(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "\n  • %s", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "\n  ... and %d more", len(items)-maxItemsToShow)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
