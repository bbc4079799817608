package template

// Template is one reusable note snippet. The whole ordered set for a storage
// code is stored as a single JSON document and replaced on write.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// Merge appends incoming templates to existing, deduplicating by id. A
// template whose id already exists replaces the stored one in place, so the
// existing order is preserved; genuinely new templates are appended in their
// incoming order.
func Merge(existing, incoming []Template) []Template {
	index := make(map[string]int, len(existing))
	merged := make([]Template, len(existing))
	copy(merged, existing)
	for i, t := range merged {
		index[t.ID] = i
	}

	for _, t := range incoming {
		if i, ok := index[t.ID]; ok {
			merged[i] = t
			continue
		}
		index[t.ID] = len(merged)
		merged = append(merged, t)
	}
	return merged
}
