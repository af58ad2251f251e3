package domain

// SelectAllLabel is the presentation-layer sentinel meaning "no filter".
// It exists only at the HTTP boundary; inside the core a Selection carries
// the distinction explicitly instead of a magic string compared against
// real categorical values.
const SelectAllLabel = "Overall"

// Selection is a discriminated filter option: either "match everything"
// or "match exactly this value". The zero value selects everything.
type Selection struct {
	value string
	exact bool
}

// SelectAll returns a Selection that matches every value.
func SelectAll() Selection {
	return Selection{}
}

// SelectExact returns a Selection matching only the given value.
func SelectExact(value string) Selection {
	return Selection{value: value, exact: true}
}

// ParseSelection maps a query-string value to a Selection. An empty value
// or the SelectAllLabel sentinel means no filtering.
func ParseSelection(raw string) Selection {
	if raw == "" || raw == SelectAllLabel {
		return SelectAll()
	}
	return SelectExact(raw)
}

// IsAll reports whether the selection matches every value.
func (s Selection) IsAll() bool {
	return !s.exact
}

// Value returns the exact value, or the SelectAllLabel sentinel when the
// selection is unrestricted.
func (s Selection) Value() string {
	if !s.exact {
		return SelectAllLabel
	}
	return s.value
}

// Matches reports whether v satisfies the selection.
func (s Selection) Matches(v string) bool {
	return !s.exact || s.value == v
}

// FilterSpec is the conjunction of dashboard filter predicates applied to
// the base table. Year bounds are inclusive and applied to StartYear.
type FilterSpec struct {
	YearFrom  *int `validate:"omitempty,min=1900,max=2200"`
	YearTo    *int `validate:"omitempty,min=1900,max=2200"`
	Region    Selection
	Procedure Selection
	Hospital  Selection
}

// IsUnfiltered reports whether no predicate is active, in which
// case filtering must return the base table unchanged.
func (f FilterSpec) IsUnfiltered() bool {
	return f.YearFrom == nil && f.YearTo == nil &&
		f.Region.IsAll() && f.Procedure.IsAll() && f.Hospital.IsAll()
}

// Matches reports whether a record satisfies every active predicate.
func (f FilterSpec) Matches(r *ProcedureRecord) bool {
	if !r.InYearRange(f.YearFrom, f.YearTo) {
		return false
	}
	if !f.Region.Matches(r.Region) {
		return false
	}
	if !f.Procedure.Matches(r.Procedure) {
		return false
	}
	return f.Hospital.Matches(r.HospitalName)
}
