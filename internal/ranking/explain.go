package ranking

import (
	"fmt"
	"math"
)

// formatLine renders one explanation entry as "<description>: <+|-><points>pts".
// Zero is written as "+0pts".
func formatLine(description string, delta int) string {
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	return fmt.Sprintf("%s: %s%dpts", description, sign, delta)
}

func textRelevanceLine(relevance, contribution float64) string {
	return formatLine(fmt.Sprintf("Text relevance %.1f/100", relevance), int(math.Round(contribution)))
}

func missingMustHaveLine(missing, penalty int) string {
	return formatLine(fmt.Sprintf("Missing %d must-have skill(s)", missing), -penalty)
}

func allMustHaveLine(matched int) string {
	return formatLine(fmt.Sprintf("All %d must-have skills present", matched), 0)
}

func niceToHaveLine(matched, bonus int) string {
	return formatLine(fmt.Sprintf("%d nice-to-have skill(s)", matched), bonus)
}

func experienceBelowLine(have, minYears int) string {
	return formatLine(fmt.Sprintf("Experience below minimum (%d vs %d years)", have, minYears), -experiencePenalty)
}

func experienceMetLine(have int) string {
	return formatLine(fmt.Sprintf("Experience meets requirement (%d years)", have), 0)
}

func locationLine(match bool) string {
	if match {
		return formatLine("Location match", 0)
	}
	return formatLine("Location mismatch", -locationPenalty)
}

func keywordDensityLine(bonus int) string {
	return formatLine("Keyword density bonus", bonus)
}

func missingSkillGap(skill string) string {
	return "Missing required skill: " + skill
}

func experienceGap(years int) string {
	return fmt.Sprintf("Needs %d more year(s) of experience", years)
}

func locationGap(preferred string) string {
	return "Preferred location: " + preferred
}
