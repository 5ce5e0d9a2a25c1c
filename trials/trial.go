package trials

import "encoding/json"

// Trial is a completed study with posted results. Results is kept as the raw
// registry JSON and never interpreted.
type Trial struct {
	ID      string          `json:"id" bson:"id"`
	Title   string          `json:"title" bson:"title"`
	Summary string          `json:"summary" bson:"summary"`
	Results json.RawMessage `json:"results" bson:"results"`
}

// Headline renders the trial as "ID: title - summary".
func (t Trial) Headline() string {
	return t.ID + ": " + t.Title + " - " + t.Summary
}
