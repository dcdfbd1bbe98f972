package core

// FilterByCategory returns the submissions whose Category equals selection,
// in their original order. AllCategories selects everything.
// The result never aliases the input slice and is never nil.
func FilterByCategory(selection string, submissions []Submission) []Submission {
	if selection == AllCategories {
		out := make([]Submission, len(submissions))
		copy(out, submissions)
		return out
	}
	out := make([]Submission, 0, len(submissions))
	for _, s := range submissions {
		if s.Category == selection {
			out = append(out, s)
		}
	}
	return out
}
