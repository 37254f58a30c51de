package route

import (
	"errors"
	"fmt"
	"strings"
)

// Policy decides whether consecutive segments of a route group are joined.
// The zero value is not a policy; callers must name one.
type Policy int

const (
	policyUnset Policy = iota
	// Strict keeps segments visually disjoint. A break always separates the
	// last vertex of one segment from the first vertex of the next.
	Strict
	// Bridging joins the last waypoint of each segment to the first waypoint
	// of the next one, drawing one continuous line per route group.
	Bridging
)

// ErrUnknownPolicy is returned for unnamed or unrecognised policies.
var ErrUnknownPolicy = errors.New("unknown stitch policy")

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Bridging:
		return "bridging"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Valid reports whether p is one of the named policies.
func (p Policy) Valid() bool {
	return p == Strict || p == Bridging
}

// ParsePolicy maps a policy name to its value.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "strict":
		return Strict, nil
	case "bridging":
		return Bridging, nil
	default:
		return policyUnset, fmt.Errorf("%w: %q (use strict or bridging)", ErrUnknownPolicy, name)
	}
}

func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, ErrUnknownPolicy
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
