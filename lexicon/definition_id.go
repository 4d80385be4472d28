package lexicon

import (
	"fmt"
	"strings"

	"github.com/reoring/lexgen/internal/naming"
)

// MainName is the definition name of a document's primary definition.
const MainName = "main"

// DefinitionID names one definition inside a lexicon document. It is
// comparable and used as a map key.
type DefinitionID struct {
	nsid NSID
	name string
}

// NewDefinitionID returns the ID of definition name in document nsid. An
// empty name means main.
func NewDefinitionID(nsid NSID, name string) DefinitionID {
	if name == "" {
		name = MainName
	}
	return DefinitionID{nsid: nsid, name: name}
}

// ParseDefinitionID parses "nsid" or "nsid#name".
func ParseDefinitionID(s string) (DefinitionID, error) {
	nsidPart, name, hasName := strings.Cut(s, "#")
	if hasName && name == "" {
		return DefinitionID{}, fmt.Errorf("definition id %q: empty name after '#'", s)
	}
	nsid, err := ParseNSID(nsidPart)
	if err != nil {
		return DefinitionID{}, err
	}
	return NewDefinitionID(nsid, name), nil
}

func (id DefinitionID) NSID() NSID   { return id.nsid }
func (id DefinitionID) Name() string { return id.name }

// IsMain reports whether id names the document's primary definition.
func (id DefinitionID) IsMain() bool { return id.name == MainName }

// String is the NSID for main definitions and nsid#name otherwise. IDs sort
// by this value.
func (id DefinitionID) String() string {
	if id.IsMain() {
		return id.nsid.String()
	}
	return id.nsid.String() + "#" + id.name
}

// DefinitionNames returns the (parent, name) pair used to declare the
// definition in a nested source tree.
func (id DefinitionID) DefinitionNames() (parent, name string) {
	return naming.DefinitionNames(id.nsid.Segments(), id.name, id.IsMain())
}
