package urlstate

import (
	"net/url"

	"go-doctor-finder/internal/domain/entity"
)

// Change is one key of a partial update.
type Change struct {
	Key    string
	Values []string
	Multi  bool
}

// Scalar sets key to exactly one occurrence of value. An empty value removes
// the key.
func Scalar(key, value string) Change {
	if value == "" {
		return Unset(key)
	}
	return Change{Key: key, Values: []string{value}}
}

// Sequence replaces every occurrence of key with one occurrence per non-empty
// element of values, in order. An empty sequence removes the key.
func Sequence(key string, values []string) Change {
	return Change{Key: key, Values: nonEmpty(values), Multi: true}
}

// Unset removes key.
func Unset(key string) Change {
	return Change{Key: key}
}

// ChangesFor returns the update that writes every recognized field of state.
func ChangesFor(state entity.FilterState) []Change {
	return []Change{
		Scalar(KeySearch, state.Search),
		Scalar(KeyConsultation, state.Consultation),
		Sequence(KeySpecialties, state.Specialties),
		Scalar(KeySort, state.Sort),
	}
}

// Merge applies changes to rawQuery. Keys that no change mentions keep their
// values, recognized or not. The result lists keys in sorted order; values of
// one key keep their order.
func Merge(rawQuery string, changes ...Change) string {
	query, _ := url.ParseQuery(rawQuery)
	MergeValues(query, changes...)
	return query.Encode()
}

// MergeValues is Merge operating on query directly.
func MergeValues(query url.Values, changes ...Change) {
	for _, c := range changes {
		query.Del(c.Key)
		if !c.Multi {
			if len(c.Values) > 0 && c.Values[0] != "" {
				query.Set(c.Key, c.Values[0])
			}
			continue
		}
		for _, v := range c.Values {
			if v != "" {
				query.Add(c.Key, v)
			}
		}
	}
}

// Target joins path and query the way a location bar shows them: the bare
// path when query is empty.
func Target(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}
