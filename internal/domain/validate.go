package domain

import "fmt"

// Validate checks that question and section data can be loaded into a session.
// Failures wrap ErrLoadFailure.
func Validate(questions []Question, defs []SectionDefinition) error {
	for _, def := range defs {
		if def.Questions < 0 {
			return fmt.Errorf("%w: section %q declares %d questions", ErrLoadFailure, def.Key, def.Questions)
		}
	}
	for i, q := range questions {
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d has no options", ErrLoadFailure, q.ID)
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			key := NormalizeKey(opt.Key)
			if !isOptionKey(key) {
				return fmt.Errorf("%w: question %d has unknown option key %q", ErrLoadFailure, q.ID, opt.Key)
			}
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: question %d repeats option %q", ErrLoadFailure, q.ID, opt.Key)
			}
			seen[key] = struct{}{}
		}
		if !q.HasOption(q.Correct) {
			return fmt.Errorf("%w: question at %d has correct answer %q without option text", ErrLoadFailure, i, q.Correct)
		}
	}
	return nil
}

func isOptionKey(key string) bool {
	for _, k := range OptionKeys {
		if k == key {
			return true
		}
	}
	return false
}
