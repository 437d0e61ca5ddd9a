package entity

import "fmt"

type Performance struct {
	Artist string `bson:"artist" json:"artist"`
	Start  string `bson:"start,omitempty" json:"start,omitempty"`
	End    string `bson:"end,omitempty" json:"end,omitempty"`
}

// HasTimes reports whether the performance has a defined extent. Performances
// without both start and end never participate in conflict detection.
func (p *Performance) HasTimes() bool {
	return p != nil && p.Start != "" && p.End != ""
}

// SetKey returns the canonical favoriting identity of this performance on a
// given day and stage. End is deliberately not part of the identity, so a
// late correction to an end time does not orphan existing favorites.
func (p *Performance) SetKey(day, stage string) string {
	return SetKey(p.Artist, day, stage, p.Start)
}

// TimeRange returns a display string for the performance's extent, with
// past-midnight times marked.
func (p *Performance) TimeRange() string {
	return fmt.Sprintf("%s - %s", FormatTimeForDisplay(p.Start), FormatTimeForDisplay(p.End))
}
