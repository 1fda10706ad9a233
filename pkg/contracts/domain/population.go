package domain

// StatePopulation holds the 2024 population projection for one state.
// The state names from the population dataset form the canonical state
// roster: every state-level output table must contain an entry for each of
// these states, even when no station or volume data exists for it.
type StatePopulation struct {
	StateName  string `json:"state_name"`
	Population int64  `json:"population"`
	// Valid is false when the population cell could not be coerced to a
	// number. Per-capita ratios over an invalid population are "no data".
	Valid bool `json:"valid"`
}

// StateRoster is the canonical, ordered list of states derived from the
// population dataset. Order is the dataset's row order and is preserved so
// that joins and rankings stay deterministic across runs.
type StateRoster struct {
	states []string
	index  map[string]int
}

// NewStateRoster builds a roster from population records, keeping first
// occurrence order and dropping duplicate state names.
func NewStateRoster(populations []StatePopulation) *StateRoster {
	r := &StateRoster{index: make(map[string]int, len(populations))}
	for _, p := range populations {
		if _, seen := r.index[p.StateName]; seen {
			continue
		}
		r.index[p.StateName] = len(r.states)
		r.states = append(r.states, p.StateName)
	}
	return r
}

// States returns the canonical state names in roster order
func (r *StateRoster) States() []string {
	out := make([]string, len(r.states))
	copy(out, r.states)
	return out
}

// Contains reports whether the state name is part of the canonical roster
func (r *StateRoster) Contains(stateName string) bool {
	_, ok := r.index[stateName]
	return ok
}

// Len returns the number of canonical states
func (r *StateRoster) Len() int {
	return len(r.states)
}
