package trials

import (
	"fmt"
	"net/url"
	"strings"
)

type SearchArea string

const (
	AreaCondition    SearchArea = "query.cond"
	AreaTerm         SearchArea = "query.term"
	AreaLocation     SearchArea = "query.locn"
	AreaTitles       SearchArea = "query.titles"
	AreaIntervention SearchArea = "query.intr"
	AreaOutcome      SearchArea = "query.outc"
	AreaSponsor      SearchArea = "query.spons"
	AreaLeadSponsor  SearchArea = "query.lead"
	AreaID           SearchArea = "query.id"
	AreaPatient      SearchArea = "query.patient"
)

// SearchAreas lists every area the registry accepts, in prompt order.
var SearchAreas = []SearchArea{
	AreaCondition,
	AreaTerm,
	AreaLocation,
	AreaTitles,
	AreaIntervention,
	AreaOutcome,
	AreaSponsor,
	AreaLeadSponsor,
	AreaID,
	AreaPatient,
}

var areaDescriptions = map[SearchArea]string{
	AreaCondition:    "Conditions or disease (ConditionSearch area)",
	AreaTerm:         "Other terms (BasicSearch area)",
	AreaLocation:     "Location terms (LocationSearch area)",
	AreaTitles:       "Title / acronym (TitleSearch area)",
	AreaIntervention: "Intervention / treatment (InterventionSearch area)",
	AreaOutcome:      "Outcome measure (OutcomeSearch area)",
	AreaSponsor:      "Sponsor / collaborator (SponsorSearch area)",
	AreaLeadSponsor:  "Lead sponsor name (LeadSponsorName field)",
	AreaID:           "Study IDs (IdSearch area)",
	AreaPatient:      "PatientSearch area (broad multi-field relevance)",
}

func (a SearchArea) Valid() bool {
	_, ok := areaDescriptions[a]
	return ok
}

func (a SearchArea) Description() string {
	return areaDescriptions[a]
}

// Query is either free text or a set of Essie expressions keyed by search area.
type Query struct {
	text       string
	structured map[SearchArea]string
}

// TextQuery searches the BasicSearch area with free text.
func TextQuery(text string) Query {
	return Query{text: text}
}

// StructuredQuery takes area keys as produced by the query extraction prompt.
// Unknown keys and blank values are dropped when the request is built.
func StructuredQuery(areas map[string]string) Query {
	structured := make(map[SearchArea]string, len(areas))
	for k, v := range areas {
		structured[SearchArea(k)] = v
	}
	return Query{structured: structured}
}

func (q Query) IsStructured() bool {
	return q.structured != nil
}

// Values returns the area parameters of the query.
func (q Query) Values() (url.Values, error) {
	values := url.Values{}

	if !q.IsStructured() {
		text := strings.TrimSpace(q.text)
		if text == "" {
			return nil, fmt.Errorf("%w: empty search text", ErrInvalidQuery)
		}
		values.Set(string(AreaTerm), text)
		return values, nil
	}

	for area, expr := range q.structured {
		expr = strings.TrimSpace(expr)
		if !area.Valid() || expr == "" {
			continue
		}
		values.Set(string(area), expr)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no valid non-empty query.* parameters", ErrInvalidQuery)
	}
	return values, nil
}

func (q Query) String() string {
	values, err := q.Values()
	if err != nil {
		return ""
	}
	return values.Encode()
}
