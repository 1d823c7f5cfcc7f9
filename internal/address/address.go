package address

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single path segment: an identifier that may contain
// dashes after the first character.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Address is a parsed dotted path.
type Address struct {
	Path []string
}

// New builds an address from already validated segments.
func New(segments ...string) Address {
	return Address{Path: append([]string(nil), segments...)}
}

// Parse creates an Address from its canonical string form.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("address cannot be empty")
	}
	parts := strings.Split(raw, ".")
	for _, seg := range parts {
		if seg == "" {
			return Address{}, fmt.Errorf("address %q contains an empty segment", raw)
		}
		if err := ValidateSegment(seg); err != nil {
			return Address{}, fmt.Errorf("address %q: %w", raw, err)
		}
	}
	return Address{Path: parts}, nil
}

// ValidateSegment checks that name can be used as one path segment, which
// is also the rule for component, module and port names.
func ValidateSegment(name string) error {
	if !segmentRegex.MatchString(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// String serializes the address.
func (a Address) String() string {
	return strings.Join(a.Path, ".")
}

// Len returns the number of segments.
func (a Address) Len() int {
	return len(a.Path)
}

// IsZero reports whether the address has no segments.
func (a Address) IsZero() bool {
	return len(a.Path) == 0
}

// Last returns the final segment, or "" for an empty address.
func (a Address) Last() string {
	if len(a.Path) == 0 {
		return ""
	}
	return a.Path[len(a.Path)-1]
}

// Parent returns the address without its final segment.
func (a Address) Parent() Address {
	if len(a.Path) == 0 {
		return Address{}
	}
	return New(a.Path[:len(a.Path)-1]...)
}

// Child returns a new address with name appended.
func (a Address) Child(name string) Address {
	return New(append(append([]string(nil), a.Path...), name)...)
}

// Join appends the segments of other.
func (a Address) Join(other Address) Address {
	return New(append(append([]string(nil), a.Path...), other.Path...)...)
}

// Equal checks for segment-wise equality.
func (a Address) Equal(other Address) bool {
	if len(a.Path) != len(other.Path) {
		return false
	}
	for i := range a.Path {
		if a.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}
