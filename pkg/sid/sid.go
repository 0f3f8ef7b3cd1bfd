// Package sid provides a structured representation of Windows security
// identifiers (SIDs) with typed equality and relative-identifier access.
//
// Display names of accounts and groups are mutable and localized; the SID is
// the only durable handle. All identity comparisons in guestctl go through
// this package rather than string or name matching.
package sid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Well-known identifier constants.
const (
	// NTAuthority is the identifier authority for the NT security subsystem
	// (the "5" in S-1-5-...).
	NTAuthority uint64 = 5

	// BuiltinDomainRID is the sub-authority of the local BUILTIN domain
	// (S-1-5-32), which holds the built-in local groups.
	BuiltinDomainRID uint32 = 32

	// GuestRID is the well-known relative identifier of the built-in Guest
	// account within a machine or domain authority.
	GuestRID uint32 = 501

	// AdministratorsRID is the well-known relative identifier of the built-in
	// Administrators group within the BUILTIN domain.
	AdministratorsRID uint32 = 544
)

// maxSubAuthorities mirrors the Windows SID_MAX_SUB_AUTHORITIES limit.
const maxSubAuthorities = 15

// ErrMalformed is returned when a string is not a valid SDDL-form SID.
var ErrMalformed = errors.New("malformed security identifier")

// ID is a decomposed security identifier: an identifier authority followed by
// up to fifteen sub-authorities, the last of which is the relative identifier
// (RID). The zero value is the empty identifier.
type ID struct {
	authority      uint64
	subAuthorities []uint32
}

// New constructs an ID from an identifier authority and its sub-authorities.
func New(authority uint64, subAuthorities ...uint32) ID {
	subs := make([]uint32, len(subAuthorities))
	copy(subs, subAuthorities)

	return ID{authority: authority, subAuthorities: subs}
}

// BuiltinAdministrators returns the well-known identifier of the built-in
// Administrators group, S-1-5-32-544.
func BuiltinAdministrators() ID {
	return New(NTAuthority, BuiltinDomainRID, AdministratorsRID)
}

// Parse decodes an SDDL-form identifier string such as
// "S-1-5-21-1004336348-1177238915-682003330-501".
func Parse(raw string) (ID, error) {
	parts := strings.Split(raw, "-")
	if len(parts) < 3 || !strings.EqualFold(parts[0], "S") {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}

	revision, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || revision != 1 {
		return ID{}, fmt.Errorf("%w: unsupported revision in %q", ErrMalformed, raw)
	}

	authority, err := strconv.ParseUint(parts[2], 10, 48)
	if err != nil {
		return ID{}, fmt.Errorf("%w: invalid authority in %q", ErrMalformed, raw)
	}

	subParts := parts[3:]
	if len(subParts) > maxSubAuthorities {
		return ID{}, fmt.Errorf("%w: too many sub-authorities in %q", ErrMalformed, raw)
	}

	subs := make([]uint32, 0, len(subParts))

	for _, part := range subParts {
		sub, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return ID{}, fmt.Errorf("%w: invalid sub-authority %q in %q", ErrMalformed, part, raw)
		}

		subs = append(subs, uint32(sub))
	}

	return ID{authority: authority, subAuthorities: subs}, nil
}

// String renders the identifier in SDDL form ("S-1-<authority>-<subs...>").
func (id ID) String() string {
	var builder strings.Builder

	builder.WriteString("S-1-")
	builder.WriteString(strconv.FormatUint(id.authority, 10))

	for _, sub := range id.subAuthorities {
		builder.WriteByte('-')
		builder.WriteString(strconv.FormatUint(uint64(sub), 10))
	}

	return builder.String()
}

// Authority returns the identifier authority.
func (id ID) Authority() uint64 {
	return id.authority
}

// RID returns the trailing sub-authority (the relative identifier) and true,
// or zero and false when the identifier has no sub-authorities.
func (id ID) RID() (uint32, bool) {
	if len(id.subAuthorities) == 0 {
		return 0, false
	}

	return id.subAuthorities[len(id.subAuthorities)-1], true
}

// Equal reports whether two identifiers are component-wise identical. This is
// the only comparison guestctl uses for "is this the same principal".
func (id ID) Equal(other ID) bool {
	if id.authority != other.authority || len(id.subAuthorities) != len(other.subAuthorities) {
		return false
	}

	for i, sub := range id.subAuthorities {
		if other.subAuthorities[i] != sub {
			return false
		}
	}

	return true
}

// IsZero reports whether the identifier is the empty zero value.
func (id ID) IsZero() bool {
	return id.authority == 0 && len(id.subAuthorities) == 0
}

// HasWellKnownRID reports whether the identifier belongs to the NT authority
// and ends in the given well-known relative identifier. Matching is performed
// on the decomposed fields, never on a string suffix, so an account RID such
// as 501 cannot be confused with a domain sub-authority that merely contains
// the same digits.
func (id ID) HasWellKnownRID(rid uint32) bool {
	if id.authority != NTAuthority {
		return false
	}

	last, ok := id.RID()

	return ok && last == rid
}
