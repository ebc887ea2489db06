package domain

// BuildSections resolves section definitions into contiguous [start, end) ranges
// in declared order. Counts are expected to be non-negative.
func BuildSections(defs []SectionDefinition) []SectionRange {
	ranges := make([]SectionRange, 0, len(defs))
	start := 0
	for _, def := range defs {
		end := start + def.Questions
		ranges = append(ranges, SectionRange{
			Key:   def.Key,
			Title: def.Title,
			Start: start,
			End:   end,
		})
		start = end
	}
	return ranges
}

// Locate returns the range containing index, if any.
func Locate(ranges []SectionRange, index int) (SectionRange, bool) {
	if pos := SectionPosition(ranges, index); pos >= 0 {
		return ranges[pos], true
	}
	return SectionRange{}, false
}

// SectionPosition returns the position of the range containing index, or -1.
func SectionPosition(ranges []SectionRange, index int) int {
	for i, r := range ranges {
		if r.Contains(index) {
			return i
		}
	}
	return -1
}
