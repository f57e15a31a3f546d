package history_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/navsurf/history"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw                    string
		pathname, search, hash string
	}{
		{"/the/path?the=query#the-hash", "/the/path", "?the=query", "#the-hash"},
		{"", "/", "", ""},
		{"/a?#", "/a", "", ""},
		{"?a=b", "", "?a=b", ""},
		{"#top", "", "", "#top"},
		{"/a#b?c", "/a", "", "#b?c"},
		{"/view/#abc", "/view/", "", "#abc"},
		{"/view/%23abc", "/view/%23abc", "", ""},
		{"/%E6%AD%B4%E5%8F%B2", "/歴史", "", ""},
		{"/search?q=%E6%AD%B4", "/search", "?q=%E6%AD%B4", ""},
	}

	for _, tt := range tests {
		loc, err := history.ParsePath(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.pathname, loc.Pathname, "pathname of %q", tt.raw)
		assert.Equal(t, tt.search, loc.Search, "search of %q", tt.raw)
		assert.Equal(t, tt.hash, loc.Hash, "hash of %q", tt.raw)
	}
}

func TestParsePathMalformedEscape(t *testing.T) {
	t.Parallel()

	_, err := history.ParsePath("/bad/%E0%A4%A")
	require.Error(t, err)
	assert.True(t, history.IsDecodeError(err))
	assert.ErrorIs(t, err, history.ErrMalformedEscape)

	var decodeErr *history.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "/bad/%E0%A4%A", decodeErr.Pathname)
}

func TestCreatePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/the/path?the=query#the-hash", history.CreatePath(history.Location{
		Pathname: "/the/path", Search: "?the=query", Hash: "#the-hash",
	}))
	assert.Equal(t, "/a?x=1#h", history.CreatePath(history.Location{Pathname: "/a", Search: "x=1", Hash: "h"}))
	assert.Equal(t, "/", history.CreatePath(history.Location{Search: "?"}))
	assert.Equal(t, "/a", history.CreatePath(history.Location{Pathname: "/a", Hash: "#"}))
}

func TestCreatePathRoundTrip(t *testing.T) {
	t.Parallel()

	locs := []history.Location{
		{Pathname: "/a", Search: "?", Hash: "#"},
		{Pathname: "/a", Search: "x=1", Hash: "h"},
		{Pathname: "/歴史", Search: "?q=%E6%AD%B4"},
	}
	for _, raw := range []string{
		"/the/path?the=query#the-hash",
		"/%E6%AD%B4%E5%8F%B2",
		"/%e6%ad%b4",
		"/100%25",
		"/100%25/%E6%AD%B4",
		"/a%2Fb%3Fc%23d%26e%3D",
		"/view/%23abc",
		"/a?#",
		"/",
	} {
		loc, err := history.CreateLocation(raw, nil, "", "")
		require.NoError(t, err, raw)
		locs = append(locs, loc)
	}

	for _, loc := range locs {
		path := history.CreatePath(loc)
		again, err := history.CreateLocation(path, nil, "", "")
		require.NoError(t, err, path)
		assert.Equal(t, path, history.CreatePath(again), "round trip of %q", path)
	}
}

func TestCreateLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		current  string
		wantPath string
	}{
		{"absolute", "/a/b", "/x", "/a/b"},
		{"empty inherits current", "", "/the/path", "/the/path"},
		{"search only keeps pathname", "?a=b", "/the/path", "/the/path?a=b"},
		{"hash only keeps pathname", "#top", "/the/path", "/the/path#top"},
		{"relative", "../other/path", "/the/path", "/other/path"},
		{"relative sibling", "sibling", "/the/path", "/the/sibling"},
		{"relative without current", "foo", "", "/foo"},
		{"empty without current", "", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := history.CreateLocation(tt.path, "state", "key1", tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, loc.Path())
			assert.Equal(t, "state", loc.State)
			assert.Equal(t, "key1", loc.Key)
		})
	}
}

func TestCreateLocationFrom(t *testing.T) {
	t.Parallel()

	loc, err := history.CreateLocationFrom(history.Location{
		Pathname: "/%E6%AD%B4",
		Search:   "a=b",
		Hash:     "h",
		Key:      "stale",
	}, "fallback", "fresh", "")
	require.NoError(t, err)

	assert.Equal(t, history.Location{Pathname: "/歴", Search: "?a=b", Hash: "#h", State: "fallback", Key: "fresh"}, loc)

	own, err := history.CreateLocationFrom(history.Location{Pathname: "/a", State: 42}, "fallback", "", "")
	require.NoError(t, err)
	assert.Equal(t, 42, own.State, "the partial location's state wins")

	rel, err := history.CreateLocationFrom(history.Location{Search: "?q=1"}, nil, "", "/docs/intro")
	require.NoError(t, err)
	assert.Equal(t, "/docs/intro?q=1", rel.Path())
}

func TestResolvePathname(t *testing.T) {
	t.Parallel()

	tests := []struct {
		to, from, want string
	}{
		{"/c", "/a/b", "/c"},
		{"c", "/a/b", "/a/c"},
		{"c/", "/a/b", "/a/c/"},
		{"./c", "/a/b", "/a/c"},
		{"..", "/a/b", "/"},
		{"../", "/a/b/", "/a/"},
		{"../../../x", "/a/b", "/x"},
		{"", "/a/b", "/a/b"},
		{"c", "a/b", "a/c"},
		{"../c", "a/b", "c"},
		{"../../c", "a/b", "../c"},
		{"c", "", "c"},
		{"", "", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, history.ResolvePathname(tt.to, tt.from), "%q from %q", tt.to, tt.from)
	}
}

func TestLocationEqual(t *testing.T) {
	t.Parallel()

	a := history.Location{Pathname: "/a", State: map[string]int{"n": 1}, Key: "k"}
	b := history.Location{Pathname: "/a", State: map[string]int{"n": 1}, Key: "k"}
	assert.True(t, a.Equal(b))

	b.State = map[string]int{"n": 2}
	assert.False(t, a.Equal(b))

	c := a
	c.Key = "other"
	assert.False(t, a.Equal(c))
}
