package sites

// Filter is the active sidebar selection. An empty set allows every value.
type Filter struct {
	Regions    []string `json:"regions"`
	Provinces  []string `json:"provinces"`
	Statuses   []string `json:"statuses"`
	ShowRoutes bool     `json:"showRoutes"`
}

type valueSet map[string]struct{}

func newValueSet(values []string) valueSet {
	if len(values) == 0 {
		return nil
	}
	set := make(valueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s valueSet) allows(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// Apply returns the sites passing every non-empty set, in input order.
// The input slice is not modified.
func (f Filter) Apply(all []Site) []Site {
	regions := newValueSet(f.Regions)
	provinces := newValueSet(f.Provinces)
	statuses := newValueSet(f.Statuses)

	out := make([]Site, 0, len(all))
	for _, s := range all {
		if !regions.allows(s.Region) || !provinces.allows(s.Province) || !statuses.allows(s.Status) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DistinctValues lists the non-empty values of field in first-seen order.
func DistinctValues(all []Site, field Field) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, s := range all {
		v := s.Value(field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
