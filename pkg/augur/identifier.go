package augur

import (
	"fmt"
	"regexp"
)

// Identifier is a parsed model reference of the form "owner/name" or
// "owner/name:version".
type Identifier struct {
	Owner   string
	Name    string
	Version string
}

var identifierPattern = regexp.MustCompile(`^([^/:]+)/([^/:]+)(?::(.+))?$`)

// ParseIdentifier parses a model reference. It returns a ValidationError if
// the reference matches neither "owner/name" nor "owner/name:version".
func ParseIdentifier(ref string) (Identifier, error) {
	m := identifierPattern.FindStringSubmatch(ref)
	if m == nil {
		return Identifier{}, &ValidationError{
			Message: fmt.Sprintf("invalid model reference %q, expected owner/name or owner/name:version", ref),
		}
	}
	return Identifier{Owner: m[1], Name: m[2], Version: m[3]}, nil
}

// String renders the identifier back to its reference form.
func (id Identifier) String() string {
	if id.Version == "" {
		return id.Owner + "/" + id.Name
	}
	return id.Owner + "/" + id.Name + ":" + id.Version
}
