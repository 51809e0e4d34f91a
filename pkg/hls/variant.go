package hls

import (
	"strconv"

	"github.com/rs/zerolog"
)

// PolicyKind enumerates bandwidth selection policies.
type PolicyKind int

const (
	PolicyMin PolicyKind = iota
	PolicyMax
	PolicyExact
)

// Policy decides which variant of a master playlist to download.
type Policy struct {
	Kind      PolicyKind
	Bandwidth uint64 // PolicyExact only
}

// ParsePolicy parses a selection policy string: "min", "max", or an exact
// integer bandwidth.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "min":
		return Policy{Kind: PolicyMin}, nil
	case "max":
		return Policy{Kind: PolicyMax}, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Policy{}, newError(ErrCodeResolution, "", nil, "invalid bandwidth policy %q: want min, max, or an integer", s)
	}
	return Policy{Kind: PolicyExact, Bandwidth: n}, nil
}

// SelectVariant picks exactly one variant according to policy. Variants with
// a non-numeric declared bandwidth are never candidates; min and max emit a
// warning when any are skipped and ties go to the first in source order.
func SelectVariant(variants []Variant, policy Policy, logger zerolog.Logger) (Variant, error) {
	if policy.Kind == PolicyExact {
		for _, v := range variants {
			if v.Bandwidth != nil && *v.Bandwidth == policy.Bandwidth {
				return v, nil
			}
		}
		return Variant{}, newError(ErrCodeResolution, "", nil, "no variant with bandwidth %d", policy.Bandwidth)
	}

	var best *Variant
	skipped := 0
	for i := range variants {
		v := &variants[i]
		if v.Bandwidth == nil {
			skipped++
			continue
		}
		switch {
		case best == nil:
			best = v
		case policy.Kind == PolicyMin && *v.Bandwidth < *best.Bandwidth:
			best = v
		case policy.Kind == PolicyMax && *v.Bandwidth > *best.Bandwidth:
			best = v
		}
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Msg("ignoring variants with non-numeric bandwidth")
	}
	if best == nil {
		return Variant{}, newError(ErrCodeResolution, "", nil, "no selectable variants")
	}
	return *best, nil
}
