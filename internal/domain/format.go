package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatClock renders remaining seconds as MM:SS.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// FormatTimeTaken renders elapsed seconds as "M min SS sec".
func FormatTimeTaken(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%d min %02d sec", totalSeconds/60, totalSeconds%60)
}

// KebabToSnake converts "general-awareness" into the section key "general_awareness".
func KebabToSnake(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// SlugToTitle converts "quantitative-aptitude" into "Quantitative Aptitude".
// Empty segments from doubled hyphens are dropped.
func SlugToTitle(slug string) string {
	words := make([]string, 0, 4)
	for _, word := range strings.Split(slug, "-") {
		if word == "" {
			continue
		}
		words = append(words, strings.ToUpper(word[:1])+word[1:])
	}
	return strings.Join(words, " ")
}

var parenthetical = regexp.MustCompile(`\s*\(.*?\)\s*`)

// UnitTitle strips parenthetical notes: "Static GK (Books, Awards)" -> "Static GK".
func UnitTitle(title string) string {
	if title == "" {
		return "Unit"
	}
	return strings.TrimSpace(parenthetical.ReplaceAllString(title, ""))
}
