package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadUpper(t *testing.T) {
	assert.Equal(t, "Post", HeadUpper("post"))
	assert.Equal(t, "ReplyRef", HeadUpper("replyRef"))
	assert.Equal(t, "Already", HeadUpper("Already"))
	assert.Equal(t, "", HeadUpper(""))
	assert.Equal(t, "Élan", HeadUpper("élan"))
	assert.Equal(t, "9lives", HeadUpper("9lives"))
}

func TestDefinitionNames_Main(t *testing.T) {
	parent, name := DefinitionNames([]string{"app", "bsky", "feed", "post"}, "main", true)
	assert.Equal(t, "App.Bsky.Feed", parent)
	assert.Equal(t, "Post", name)
}

func TestDefinitionNames_MainSingleSegment(t *testing.T) {
	parent, name := DefinitionNames([]string{"post"}, "main", true)
	assert.Equal(t, "", parent)
	assert.Equal(t, "Post", name)
}

func TestDefinitionNames_Auxiliary(t *testing.T) {
	parent, name := DefinitionNames([]string{"app", "bsky", "feed", "post"}, "replyRef", false)
	assert.Equal(t, "app.bsky.feed.post", parent)
	assert.Equal(t, "ReplyRef", name)
}

func TestDefinitionNames_EmptySegmentsPanics(t *testing.T) {
	assert.Panics(t, func() { DefinitionNames(nil, "main", true) })
	assert.Panics(t, func() { DefinitionNames([]string{}, "x", false) })
}

func TestSplitPath(t *testing.T) {
	assert.Empty(t, SplitPath(""))
	assert.Equal(t, []string{"a"}, SplitPath("a"))
	assert.Equal(t, []string{"App", "Bsky", "Feed"}, SplitPath("App.Bsky.Feed"))
}

func TestSeparateFullName(t *testing.T) {
	cases := []struct {
		in, parent, name string
	}{
		{"a.b.c", "a.b", "c"},
		{"a", "", "a"},
		{"App.Bsky", "App", "Bsky"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			parent, name, ok := SeparateFullName(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.parent, parent)
			assert.Equal(t, tc.name, name)
		})
	}

	_, _, ok := SeparateFullName("")
	assert.False(t, ok)
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a.b", JoinNonEmpty("a", "", "b"))
	assert.Equal(t, "Post", JoinNonEmpty("", "Post"))
	assert.Equal(t, "", JoinNonEmpty("", ""))
}
