package lexicon_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/lexgen/lexicon"
)

const postJSON = `{
  "lexicon": 1,
  "id": "app.bsky.feed.post",
  "defs": {
    "main": {
      "type": "record",
      "key": "tid",
      "record": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": {"type": "string", "maxGraphemes": 300},
          "reply": {"type": "ref", "ref": "#replyRef"},
          "embed": {"type": "union", "refs": ["app.bsky.embed.images", "#missing"]}
        }
      }
    },
    "replyRef": {
      "type": "object",
      "required": ["root", "parent"],
      "properties": {
        "root": {"type": "ref", "ref": "com.atproto.repo.strongRef"},
        "parent": {"type": "ref", "ref": "com.atproto.repo.strongRef#main"}
      }
    }
  }
}`

const strongRefYAML = `
lexicon: 1
id: com.atproto.repo.strongRef
description: A URI with a content-hash fingerprint.
defs:
  main:
    type: object
    required: [uri, cid]
    properties:
      uri:
        type: string
        format: at-uri
      cid:
        type: string
        format: cid
`

const strongRefJSON = `{
  "lexicon": 1,
  "id": "com.atproto.repo.strongRef",
  "description": "A URI with a content-hash fingerprint.",
  "defs": {
    "main": {
      "type": "object",
      "required": ["uri", "cid"],
      "properties": {
        "uri": {"type": "string", "format": "at-uri"},
        "cid": {"type": "string", "format": "cid"}
      }
    }
  }
}`

func mustParseJSON(t *testing.T, s string) *lexicon.Document {
	t.Helper()
	doc, err := lexicon.ParseJSON([]byte(s), lexicon.ParseOptions{OnDuplicateKey: lexicon.Warn})
	require.NoError(t, err)
	return doc
}

func TestParseJSON(t *testing.T) {
	doc := mustParseJSON(t, postJSON)
	assert.Equal(t, 1, doc.Lexicon)
	assert.Equal(t, "app.bsky.feed.post", doc.ID.String())
	assert.Equal(t, []string{"main", "replyRef"}, doc.DefNames())
	assert.Empty(t, doc.Warnings)

	main := doc.Defs["main"]
	assert.Equal(t, lexicon.TypeRecord, main.Type)
	assert.Equal(t, "tid", main.Key)
	require.NotNil(t, main.Record)
	assert.Equal(t, "#replyRef", main.Record.Properties["reply"].Ref)
	require.NotNil(t, main.Record.Properties["text"].MaxGraphemes)
	assert.Equal(t, 300, *main.Record.Properties["text"].MaxGraphemes)
	assert.NoError(t, doc.Validate())
}

func TestParseJSON_InvalidID(t *testing.T) {
	_, err := lexicon.ParseJSON([]byte(`{"lexicon":1,"id":"bad","defs":{}}`), lexicon.ParseOptions{})
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, lexicon.CodeInvalidNSID, iss[0].Code)
	assert.Equal(t, "/id", iss[0].Path)
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := lexicon.ParseJSON([]byte(`{"lexicon":`), lexicon.ParseOptions{})
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, lexicon.CodeParseError, iss[0].Code)
}

func TestParseJSON_DuplicateKeys(t *testing.T) {
	js := `{"lexicon":1,"id":"com.example.dup","defs":{"main":{"type":"token"},"main":{"type":"token"}}}`

	doc, err := lexicon.ParseJSON([]byte(js), lexicon.ParseOptions{OnDuplicateKey: lexicon.Warn})
	require.NoError(t, err)
	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, lexicon.CodeDuplicateKey, doc.Warnings[0].Code)
	assert.Equal(t, "/defs/main", doc.Warnings[0].Path)
	assert.Equal(t, "com.example.dup", doc.Warnings[0].Document)

	_, err = lexicon.ParseJSON([]byte(js), lexicon.ParseOptions{OnDuplicateKey: lexicon.Error})
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, lexicon.CodeDuplicateKey, iss[0].Code)

	doc, err = lexicon.ParseJSON([]byte(js), lexicon.ParseOptions{})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
}

func TestParseYAML_MatchesJSON(t *testing.T) {
	fromYAML, err := lexicon.ParseYAML([]byte(strongRefYAML), lexicon.ParseOptions{})
	require.NoError(t, err)
	fromJSON := mustParseJSON(t, strongRefJSON)

	assert.Equal(t, fromJSON.ID, fromYAML.ID)
	assert.Equal(t, fromJSON.Description, fromYAML.Description)
	assert.Equal(t, fromJSON.Defs, fromYAML.Defs)
}

func TestParseYAML_NotMapping(t *testing.T) {
	_, err := lexicon.ParseYAML([]byte("- a\n- b\n"), lexicon.ParseOptions{})
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, lexicon.CodeParseError, iss[0].Code)
}

func TestParseYAML_NonStringKeys(t *testing.T) {
	src := `
lexicon: 1
id: com.example.keys
defs:
  main:
    type: object
    properties:
      2: {type: string}
  1: {type: token}
`
	_, err := lexicon.ParseYAML([]byte(src), lexicon.ParseOptions{})
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	assert.Equal(t, lexicon.CodeParseError, iss[0].Code)
	assert.Equal(t, "/defs/1", iss[0].Path)
	assert.Equal(t, "/defs/main/properties/2", iss[1].Path)
}

func TestValidate(t *testing.T) {
	js := `{
	  "lexicon": 2,
	  "id": "com.example.bad",
	  "defs": {
	    "main": {"type": "object", "properties": {"x": {"type": "float"}}},
	    "aux": {"type": "query"},
	    "bad-name": {"type": "token"}
	  }
	}`
	doc := mustParseJSON(t, js)
	err := doc.Validate()
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)

	codes := map[string]string{}
	for _, it := range iss {
		codes[it.Path] = it.Code
		assert.Equal(t, "com.example.bad", it.Document)
	}
	assert.Equal(t, lexicon.CodeUnsupportedVersion, codes["/lexicon"])
	assert.Equal(t, lexicon.CodeMisplacedPrimary, codes["/defs/aux/type"])
	assert.Equal(t, lexicon.CodeInvalidDefName, codes["/defs/bad-name"])
	assert.Equal(t, lexicon.CodeInvalidType, codes["/defs/main/properties/x/type"])
}

func TestValidate_EmptyDefs(t *testing.T) {
	doc := mustParseJSON(t, `{"lexicon":1,"id":"com.example.empty","defs":{}}`)
	iss, ok := lexicon.AsIssues(doc.Validate())
	require.True(t, ok)
	assert.Equal(t, lexicon.CodeEmptyDefs, iss[0].Code)
}

func TestCollection_GenerateDefinitions(t *testing.T) {
	c := lexicon.NewCollection()
	post := mustParseJSON(t, postJSON)
	c.Add(post)
	c.Add(mustParseJSON(t, strongRefJSON))
	c.Add(nil)
	assert.Equal(t, 2, c.Len())

	defs := c.GenerateDefinitions()
	require.Len(t, defs, 3)

	main := defs[lexicon.NewDefinitionID(post.ID, "main")]
	require.NotNil(t, main)
	assert.Equal(t, "app.bsky.feed.post#replyRef", main.Record.Properties["reply"].Ref)
	assert.Equal(t, []string{"app.bsky.embed.images", "app.bsky.feed.post#missing"}, main.Record.Properties["embed"].Refs)

	reply := defs[lexicon.NewDefinitionID(post.ID, "replyRef")]
	require.NotNil(t, reply)
	assert.Equal(t, "com.atproto.repo.strongRef", reply.Properties["parent"].Ref)

	// The source documents keep their relative references.
	assert.Equal(t, "#replyRef", post.Defs["main"].Record.Properties["reply"].Ref)
}

func TestCollection_SameNSIDMerges(t *testing.T) {
	a := mustParseJSON(t, `{"lexicon":1,"id":"com.example.thing","defs":{"main":{"type":"token"}}}`)
	b := mustParseJSON(t, `{"lexicon":1,"id":"com.example.thing","defs":{"other":{"type":"object"}}}`)

	for _, order := range [][]*lexicon.Document{{a, b}, {b, a}} {
		c := lexicon.NewCollection()
		for _, d := range order {
			c.Add(d)
		}
		c.Add(order[0])
		require.Equal(t, 2, c.Len())

		defs := c.GenerateDefinitions()
		require.Len(t, defs, 2)
		assert.Equal(t, lexicon.TypeToken, defs[lexicon.NewDefinitionID(a.ID, "main")].Type)
		assert.Equal(t, lexicon.TypeObject, defs[lexicon.NewDefinitionID(a.ID, "other")].Type)
	}
}

func TestCollection_CollisionIndependentOfOrder(t *testing.T) {
	older := mustParseJSON(t, `{"lexicon":1,"id":"com.example.thing","revision":1,"defs":{"main":{"type":"token"}}}`)
	newer := mustParseJSON(t, `{"lexicon":1,"id":"com.example.thing","revision":2,"defs":{"main":{"type":"object"}}}`)
	x := mustParseJSON(t, `{"lexicon":1,"id":"com.example.other","defs":{"main":{"type":"string"}}}`)
	y := mustParseJSON(t, `{"lexicon":1,"id":"com.example.other","defs":{"main":{"type":"integer"}}}`)
	id := lexicon.NewDefinitionID(older.ID, "main")
	otherID := lexicon.NewDefinitionID(x.ID, "main")

	forward := lexicon.NewCollection()
	backward := lexicon.NewCollection()
	for _, d := range []*lexicon.Document{older, newer, x, y} {
		forward.Add(d)
	}
	for _, d := range []*lexicon.Document{y, x, newer, older} {
		backward.Add(d)
	}

	f, b := forward.GenerateDefinitions(), backward.GenerateDefinitions()
	assert.Equal(t, lexicon.TypeObject, f[id].Type, "higher revision wins")
	assert.Equal(t, f[id], b[id])
	// Same revision and source: the content tie-break decides.
	assert.Equal(t, f[otherID], b[otherID])
	assert.Equal(t, forward.Documents(), backward.Documents())
}

func TestCollection_SkipsEmptyDefinitionName(t *testing.T) {
	doc := mustParseJSON(t, `{"lexicon":1,"id":"com.example.thing","defs":{"":{"type":"token","ref":"#gone"},"main":{"type":"object"}}}`)
	c := lexicon.NewCollection()
	c.Add(doc)

	defs := c.GenerateDefinitions()
	require.Len(t, defs, 1)
	assert.Equal(t, lexicon.TypeObject, defs[lexicon.NewDefinitionID(doc.ID, "main")].Type)
	assert.Empty(t, c.Check())
}

func TestCollection_Check(t *testing.T) {
	c := lexicon.NewCollection()
	c.Add(mustParseJSON(t, postJSON))
	c.Add(mustParseJSON(t, strongRefJSON))

	iss := c.Check()
	require.Len(t, iss, 2)
	for _, it := range iss {
		assert.Equal(t, lexicon.CodeUnresolvedRef, it.Code)
		assert.Equal(t, "app.bsky.feed.post", it.Document)
	}
	assert.Equal(t, "/defs/main/record/properties/embed/refs/0", iss[0].Path)
	assert.Equal(t, "app.bsky.embed.images", iss[0].Params["ref"])
	assert.Equal(t, "/defs/main/record/properties/embed/refs/1", iss[1].Path)
	assert.Equal(t, "#missing", iss[1].Params["ref"])
}

func TestCollection_Documents_Sorted(t *testing.T) {
	c := lexicon.NewCollection()
	c.Add(mustParseJSON(t, strongRefJSON))
	c.Add(mustParseJSON(t, postJSON))
	docs := c.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "app.bsky.feed.post", docs[0].ID.String())
	assert.Equal(t, "com.atproto.repo.strongRef", docs[1].ID.String())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app", "bsky", "feed", "post.json"), postJSON)
	writeFile(t, filepath.Join(dir, "com", "atproto", "repo", "strongRef.yaml"), strongRefYAML)
	writeFile(t, filepath.Join(dir, "README.md"), "# not a lexicon")

	docs, err := lexicon.LoadDir(context.Background(), dir, lexicon.ParseOptions{OnDuplicateKey: lexicon.Warn})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "app.bsky.feed.post", docs[0].ID.String())
	assert.Equal(t, "com.atproto.repo.strongRef", docs[1].ID.String())
	assert.Equal(t, filepath.Join(dir, "app", "bsky", "feed", "post.json"), docs[0].Source)
}

func TestLoadFiles_ErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"lexicon":1,"id":"nope","defs":{}}`)
	writeFile(t, filepath.Join(dir, "good.json"), strongRefJSON)

	_, err := lexicon.LoadFiles(context.Background(), lexicon.ParseOptions{}, dir)
	iss, ok := lexicon.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, bad, iss[0].Document)
	assert.Equal(t, lexicon.CodeInvalidNSID, iss[0].Code)
}

func TestLoadFiles_MissingPath(t *testing.T) {
	_, err := lexicon.LoadFiles(context.Background(), lexicon.ParseOptions{}, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpand_DedupesAndSorts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "sub", "b.yml")
	writeFile(t, a, strongRefJSON)
	writeFile(t, b, strongRefYAML)

	files, err := lexicon.Expand(dir, a)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestIssues_Error(t *testing.T) {
	iss := lexicon.Issues{
		{Document: "com.example.a", Path: "/a", Code: lexicon.CodeInvalidType},
		{Path: "/b", Code: lexicon.CodeUnresolvedRef},
		{Path: "/c", Code: lexicon.CodeEmptyDefs},
		{Path: "/d", Code: lexicon.CodeParseError},
	}
	assert.Equal(t, "com.example.a: invalid_type at /a; unresolved_ref at /b; empty_defs at /c; ... (total 4)", iss.Error())
	assert.Equal(t, "", lexicon.Issues(nil).Error())

	assert.Equal(t, "unresolved_ref at /b: unresolved reference", iss[1].String())
}
