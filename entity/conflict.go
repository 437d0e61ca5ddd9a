package entity

// Conflict is a computed pair of favorited performances whose time ranges
// overlap. Conflicts are derived on demand, never stored. Venue labels are
// only set for cross-venue conflicts.
type Conflict struct {
	Day     string `json:"day"`
	Artist1 string `json:"artist1"`
	Artist2 string `json:"artist2"`
	Time1   string `json:"time1"`
	Time2   string `json:"time2"`
	Stage1  string `json:"stage1"`
	Stage2  string `json:"stage2"`
	Venue1  string `json:"venue1,omitempty"`
	Venue2  string `json:"venue2,omitempty"`
}

// ConflictDetail describes one performance clashing with a specific hover
// target, for tooltip display.
type ConflictDetail struct {
	Artist string `json:"artist"`
	Stage  string `json:"stage"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Venue  string `json:"venue"`
}
