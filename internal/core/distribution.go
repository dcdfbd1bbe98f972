package core

// Distribution is the per-category submission count keyed over a category registry.
type Distribution struct {
	Entries []CategoryCount `json:"entries"`
	// Unmatched counts submissions whose category is blank or not registered.
	// They are excluded from every entry.
	Unmatched int `json:"unmatched"`
}

// Distribute counts submissions per registered category. Entries follow the
// registry order; a label registered more than once yields a single entry at
// its first position. Matching is exact and case-sensitive.
func Distribute(categories []string, submissions []Submission) Distribution {
	index := make(map[string]int, len(categories))
	entries := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		if _, ok := index[c]; ok {
			continue
		}
		index[c] = len(entries)
		entries = append(entries, CategoryCount{Category: c})
	}

	var unmatched int
	for _, s := range submissions {
		i, ok := index[s.Category]
		if !ok {
			unmatched++
			continue
		}
		entries[i].Count++
	}

	return Distribution{Entries: entries, Unmatched: unmatched}
}

// Counts returns the distribution as a label to count map.
func (d Distribution) Counts() map[string]int {
	out := make(map[string]int, len(d.Entries))
	for _, e := range d.Entries {
		out[e.Category] = e.Count
	}
	return out
}

// Labels returns the category labels in order.
func (d Distribution) Labels() []string {
	out := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Category
	}
	return out
}

// Values returns the counts aligned with Labels.
func (d Distribution) Values() []int {
	out := make([]int, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Count
	}
	return out
}

// Total is the number of submissions counted under some category.
func (d Distribution) Total() int {
	var n int
	for _, e := range d.Entries {
		n += e.Count
	}
	return n
}
