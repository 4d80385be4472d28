package lexicon

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/lexgen/internal/engine"
)

// Version is the only lexicon language version understood.
const Version = 1

// Document is one lexicon file: an NSID and its named definitions.
type Document struct {
	Lexicon     int                `json:"lexicon"`
	ID          NSID               `json:"id"`
	Revision    int                `json:"revision,omitempty"`
	Description string             `json:"description,omitempty"`
	Defs        map[string]*Schema `json:"defs"`

	// Source is the file the document was read from, if any.
	Source string `json:"-"`
	// Warnings holds non-fatal issues found while parsing.
	Warnings Issues `json:"-"`
}

// Severity expresses how a parse-time finding is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOptions configures document parsing.
type ParseOptions struct {
	// OnDuplicateKey decides whether duplicate JSON object keys are ignored,
	// recorded in Document.Warnings, or rejected.
	OnDuplicateKey Severity
	// MaxIssues caps duplicate-key findings; < 0 means unlimited, 0 means
	// the default of 32.
	MaxIssues int
}

type rawDocument struct {
	Lexicon     int                `json:"lexicon"`
	ID          string             `json:"id"`
	Revision    int                `json:"revision"`
	Description string             `json:"description"`
	Defs        map[string]*Schema `json:"defs"`
}

// ParseJSON decodes a lexicon document from JSON. Decoding failures and, with
// OnDuplicateKey == Error, duplicate keys are returned as Issues.
func ParseJSON(data []byte, opts ParseOptions) (*Document, error) {
	var warnings Issues
	if opts.OnDuplicateKey != Ignore {
		limit := opts.MaxIssues
		if limit == 0 {
			limit = 32
		}
		mode := eng.DupWarn
		if opts.OnDuplicateKey == Error {
			mode = eng.DupError
		}
		found := fromEngineIssues(eng.DetectJSONDuplicateKeysBytes(data, mode, limit))
		if opts.OnDuplicateKey == Error && hasCode(found, CodeDuplicateKey) {
			return nil, found
		}
		for _, it := range found {
			if it.Code == CodeDuplicateKey || it.Code == CodeTruncated {
				warnings = append(warnings, it)
			}
		}
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	nsid, err := ParseNSID(raw.ID)
	if err != nil {
		return nil, Issues{{Path: "/id", Code: CodeInvalidNSID, Message: err.Error(), Cause: err}}
	}
	return &Document{
		Lexicon:     raw.Lexicon,
		ID:          nsid,
		Revision:    raw.Revision,
		Description: raw.Description,
		Defs:        raw.Defs,
		Warnings:    warnings.withDocument(nsid.String()),
	}, nil
}

// ParseYAML decodes a lexicon document written as YAML. The YAML tree is
// normalized into JSON-compatible values and decoded like JSON; duplicate
// mapping keys are already rejected by the YAML decoder.
func ParseYAML(data []byte, opts ParseOptions) (*Document, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	v, iss := yamlToJSONValue(node, "")
	if len(iss) > 0 {
		return nil, iss
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "yaml document is not a mapping"}}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	opts.OnDuplicateKey = Ignore
	return ParseJSON(b, opts)
}

// DefNames returns the definition names in sorted order.
func (d *Document) DefNames() []string {
	return slices.Sorted(maps.Keys(d.Defs))
}

// Validate checks the document shape: version, definition names, types and
// the placement of primary types.
func (d *Document) Validate() error {
	var iss Issues
	if d.Lexicon != Version {
		iss = AppendIssues(iss, Issue{
			Path:    "/lexicon",
			Code:    CodeUnsupportedVersion,
			Message: fmt.Sprintf("lexicon version %d, want %d", d.Lexicon, Version),
			Params:  map[string]any{"got": d.Lexicon},
		})
	}
	if d.ID.IsZero() {
		iss = AppendIssues(iss, Issue{Path: "/id", Code: CodeInvalidNSID, Message: "missing id"})
	}
	if len(d.Defs) == 0 {
		iss = AppendIssues(iss, Issue{Path: "/defs", Code: CodeEmptyDefs})
	}
	for _, name := range d.DefNames() {
		def := d.Defs[name]
		p := "/defs/" + escapePointer(name)
		if !validDefName(name) {
			iss = AppendIssues(iss, Issue{Path: p, Code: CodeInvalidDefName, Params: map[string]any{"name": name}})
		}
		if def == nil {
			iss = AppendIssues(iss, Issue{Path: p, Code: CodeInvalidType, Message: "definition is null"})
			continue
		}
		if name != MainName && IsPrimaryType(def.Type) {
			iss = AppendIssues(iss, Issue{Path: p + "/type", Code: CodeMisplacedPrimary, Params: map[string]any{"type": def.Type}})
		}
		def.Walk(func(sub string, s *Schema) {
			if !IsKnownType(s.Type) {
				iss = AppendIssues(iss, Issue{
					Path:    p + sub + "/type",
					Code:    CodeInvalidType,
					Message: fmt.Sprintf("unknown type %q", s.Type),
					Params:  map[string]any{"type": s.Type},
				})
			}
		})
	}
	doc := d.ID.String()
	if doc == "" {
		doc = d.Source
	}
	return iss.withDocument(doc).orNil()
}

func validDefName(name string) bool {
	if name == "" || !isLetter(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if !isAlnum(r) {
			return false
		}
	}
	return true
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message})
	}
	return iss
}

func hasCode(iss Issues, code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// yamlToJSONValue converts YAML-decoded values (which may contain
// map[any]any) into JSON-like values recursively. Mapping keys that are not
// strings are reported as parse errors at the key's path, sorted by path.
func yamlToJSONValue(v any, path string) (any, Issues) {
	var iss Issues
	out := yamlConvert(v, path, &iss)
	slices.SortFunc(iss, func(a, b Issue) int { return strings.Compare(a.Path, b.Path) })
	return out, iss
}

func yamlConvert(v any, path string, iss *Issues) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlConvert(vv, path+"/"+escapePointer(k), iss)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				*iss = AppendIssues(*iss, Issue{
					Path:    path + "/" + escapePointer(fmt.Sprint(k)),
					Code:    CodeParseError,
					Message: fmt.Sprintf("mapping key %v (%T) is not a string", k, k),
				})
				continue
			}
			out[ks] = yamlConvert(vv, path+"/"+escapePointer(ks), iss)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlConvert(t[i], path+"/"+strconv.Itoa(i), iss)
		}
		return arr
	default:
		return v
	}
}
