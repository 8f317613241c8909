package urlstate_test

import (
	"net/url"
	"testing"

	"go-doctor-finder/internal/urlstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues(t *testing.T, rawQuery string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return values
}

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		changes []urlstate.Change
		want    url.Values
	}{
		{
			name:    "scalar sets one occurrence",
			query:   "sort=fees&sort=experience",
			changes: []urlstate.Change{urlstate.Scalar("sort", "experience")},
			want:    url.Values{"sort": {"experience"}},
		},
		{
			name:    "empty scalar deletes",
			query:   "search=ali&sort=fees",
			changes: []urlstate.Change{urlstate.Scalar("search", "")},
			want:    url.Values{"sort": {"fees"}},
		},
		{
			name:    "unset deletes",
			query:   "search=ali",
			changes: []urlstate.Change{urlstate.Unset("search")},
			want:    url.Values{},
		},
		{
			name:    "sequence replaces every occurrence and skips empty elements",
			query:   "specialties=A&specialties=B",
			changes: []urlstate.Change{urlstate.Sequence("specialties", []string{"C", "", "A"})},
			want:    url.Values{"specialties": {"C", "A"}},
		},
		{
			name:    "empty sequence deletes",
			query:   "specialties=A",
			changes: []urlstate.Change{urlstate.Sequence("specialties", nil)},
			want:    url.Values{},
		},
		{
			name:    "untouched keys survive, unknown ones included",
			query:   "page=3&search=ali&ref=x",
			changes: []urlstate.Change{urlstate.Scalar("sort", "fees")},
			want:    url.Values{"page": {"3"}, "search": {"ali"}, "ref": {"x"}, "sort": {"fees"}},
		},
		{
			name:    "no changes",
			query:   "search=ali",
			changes: nil,
			want:    url.Values{"search": {"ali"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mustValues(t, urlstate.Merge(tt.query, tt.changes...)))
		})
	}
}

func TestTarget(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/", urlstate.Target("/", ""))
	assert.Equal(t, "/doctors?sort=fees", urlstate.Target("/doctors", "sort=fees"))
}

func TestMerge_KeyOrder(t *testing.T) {
	t.Parallel()

	got := urlstate.Merge("utm=x&specialties=B&specialties=A&page=2", urlstate.Scalar(urlstate.KeySearch, "ali"))

	assert.Equal(t, "page=2&search=ali&specialties=B&specialties=A&utm=x", got)
}
