package errors

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/socialgraph/pkg/network"
)

const maxNameLength = 256

// ValidatePersonName rejects names the engine would accept but that break
// reports and storage keys. Any name is fine as long as it is non-empty,
// at most 256 bytes, has no surrounding whitespace and no control
// characters. Failures wrap [network.ErrInvalidID].
func ValidatePersonName(name string) error {
	invalid := func(format string, args ...any) error {
		return Wrap(ErrCodeInvalidName, network.ErrInvalidID, format, args...)
	}
	switch {
	case name == "":
		return invalid("person name must not be empty")
	case len(name) > maxNameLength:
		return invalid("person name is longer than %d bytes", maxNameLength)
	case strings.TrimSpace(name) != name:
		return invalid("person name %q has leading or trailing whitespace", name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return invalid("person name %q contains control characters", name)
	}
	return nil
}

// Snapshot names end up as file names, Redis keys and Mongo/Neo4j values.
var snapshotName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSnapshotName accepts a single token of letters, digits, dot,
// dash and underscore that does not start with punctuation or contain "..".
func ValidateSnapshotName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidName, "snapshot name must not be empty")
	case len(name) > maxNameLength:
		return New(ErrCodeInvalidName, "snapshot name is longer than %d bytes", maxNameLength)
	case strings.Contains(name, ".."), !snapshotName.MatchString(name):
		return New(ErrCodeInvalidName, "invalid snapshot name %q", name)
	}
	return nil
}

// ValidateURL checks that rawURL parses and uses one of schemes, e.g.
// ValidateURL(uri, "mongodb", "mongodb+srv").
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "backend URL is not set")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "backend URL does not parse")
	}
	if !slices.Contains(schemes, u.Scheme) {
		return New(ErrCodeInvalidConfig, "backend URL scheme %q is not one of %s", u.Scheme, strings.Join(schemes, ", "))
	}
	return nil
}
