package urlstate

import (
	"go-doctor-finder/internal/domain/entity"
)

// Location is the navigable address the state lives in.
type Location interface {
	Path() string
	RawQuery() string
	// Navigate moves the location to target, a path with an optional query.
	Navigate(target string)
}

// PopStater is implemented by locations that can move without the adapter
// asking, e.g. through back/forward navigation.
type PopStater interface {
	// OnPopState registers fn to run after every such move and returns a
	// function that unregisters it.
	OnPopState(fn func()) (remove func())
}

// Adapter reads and writes entity.FilterState through a Location. It holds
// no state of its own.
type Adapter struct {
	loc Location
}

func NewAdapter(loc Location) *Adapter {
	return &Adapter{loc: loc}
}

// Read parses the current filter state from the live location.
func (a *Adapter) Read() entity.FilterState {
	return Parse(a.loc.RawQuery())
}

// Update merges changes into the current query and navigates to the result.
func (a *Adapter) Update(changes ...Change) {
	a.loc.Navigate(a.Href(changes...))
}

// Clear drops the whole query string, recognized keys or not.
func (a *Adapter) Clear() {
	a.loc.Navigate(a.ClearHref())
}

// Href returns where Update would navigate, without navigating.
func (a *Adapter) Href(changes ...Change) string {
	return Target(a.loc.Path(), Merge(a.loc.RawQuery(), changes...))
}

// ClearHref returns where Clear would navigate.
func (a *Adapter) ClearHref() string {
	return a.loc.Path()
}

// SpecialtyChange returns the change that selects or deselects name on top
// of the current selection. Selecting an already selected name is a no-op.
func (a *Adapter) SpecialtyChange(name string, selected bool) Change {
	current := a.Read().Specialties
	if selected {
		return Sequence(KeySpecialties, current.With(name))
	}
	return Sequence(KeySpecialties, current.Without(name))
}

// OnNavigate calls fn with the freshly parsed state every time the location
// moves on its own. It is a no-op for locations that cannot.
func (a *Adapter) OnNavigate(fn func(entity.FilterState)) (remove func()) {
	ps, ok := a.loc.(PopStater)
	if !ok {
		return func() {}
	}
	return ps.OnPopState(func() {
		fn(a.Read())
	})
}
