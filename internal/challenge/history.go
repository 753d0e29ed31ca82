package challenge

import "encoding/json"

// History is the append-only log of completed challenges.
type History struct {
	challenges []Challenge
}

// NewHistory creates a history holding copies of the given challenges.
func NewHistory(challenges ...Challenge) History {
	var h History
	for _, c := range challenges {
		h.Add(c)
	}
	return h
}

// Add appends a snapshot of c.
func (h *History) Add(c Challenge) {
	h.challenges = append(h.challenges, c.Clone())
}

// Extend appends every entry of other, preserving order.
func (h *History) Extend(other History) {
	for _, c := range other.challenges {
		h.Add(c)
	}
}

// Len returns the number of completed challenges.
func (h History) Len() int {
	return len(h.challenges)
}

// Challenges returns a copy of the entries, oldest first.
func (h History) Challenges() []Challenge {
	out := make([]Challenge, len(h.challenges))
	for i, c := range h.challenges {
		out[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of h.
func (h History) Clone() History {
	if len(h.challenges) == 0 {
		return History{}
	}
	return History{challenges: h.Challenges()}
}

// TotalPerformance sums the performance of all entries.
func (h History) TotalPerformance() float64 {
	var total float64
	for _, c := range h.challenges {
		total += c.Performance()
	}
	return total
}

// AveragePerformance returns the mean performance, or 0 for an empty history.
func (h History) AveragePerformance() float64 {
	if len(h.challenges) == 0 {
		return 0
	}
	return h.TotalPerformance() / float64(len(h.challenges))
}

// PerfectCount returns how many entries scored 100%.
func (h History) PerfectCount() int {
	n := 0
	for _, c := range h.challenges {
		if c.Performance() >= 100 {
			n++
		}
	}
	return n
}

// DistinctKinds returns the number of different challenge kinds completed.
func (h History) DistinctKinds() int {
	seen := make(map[Kind]bool)
	for _, c := range h.challenges {
		seen[c.Type.Kind] = true
	}
	return len(seen)
}

// CompletedIDs returns the set of config ids present in the history.
func (h History) CompletedIDs() map[string]bool {
	ids := make(map[string]bool, len(h.challenges))
	for _, c := range h.challenges {
		ids[c.Config.ID] = true
	}
	return ids
}

func (h History) MarshalJSON() ([]byte, error) {
	if h.challenges == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.challenges)
}

func (h *History) UnmarshalJSON(data []byte) error {
	var entries []Challenge
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		entries = nil
	}
	h.challenges = entries
	return nil
}
