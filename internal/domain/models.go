package domain

import "strings"

// OptionKeys is the fixed option alphabet, in display order.
var OptionKeys = []string{"a", "b", "c", "d"}

// Option is one answer choice of a question. Absent options are simply not listed.
type Option struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// Question models an MCQ question with a single correct option key.
type Question struct {
	ID          int      `json:"id" yaml:"id"`
	Type        string   `json:"type" yaml:"type"` // section key
	Level       string   `json:"level,omitempty" yaml:"level"`
	Text        string   `json:"text" yaml:"text"`
	Options     []Option `json:"options" yaml:"options"`
	Correct     string   `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation"`
}

// CorrectKey returns the correct option key in its normalized form.
func (q Question) CorrectKey() string {
	return NormalizeKey(q.Correct)
}

// HasOption reports whether the question carries option text for key.
func (q Question) HasOption(key string) bool {
	_, ok := q.OptionText(key)
	return ok
}

// OptionText returns the text of the option with the given key.
func (q Question) OptionText(key string) (string, bool) {
	key = NormalizeKey(key)
	for _, opt := range q.Options {
		if NormalizeKey(opt.Key) == key {
			return opt.Text, true
		}
	}
	return "", false
}

// NormalizeKey brings an option key into the canonical comparison form.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// SectionDefinition declares a named block of questions in canonical order.
type SectionDefinition struct {
	Key       string `json:"key" yaml:"key"`
	Title     string `json:"title" yaml:"title"`
	Questions int    `json:"questions" yaml:"questions"`
}

// SectionRange is a section definition resolved to [Start, End) over the flattened question list.
type SectionRange struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Contains reports whether the flattened question index falls inside the range.
func (r SectionRange) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// Quiz is a titled collection of questions together with its section layout.
type Quiz struct {
	ID        string              `json:"id" yaml:"id"`
	Title     string              `json:"title" yaml:"title"`
	Sections  []SectionDefinition `json:"sections" yaml:"sections"`
	Questions []Question          `json:"questions" yaml:"questions"`
}
