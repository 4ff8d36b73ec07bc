package models

import "strconv"

// RefKind tags which identity a claim reference resolved to.
type RefKind int

const (
	// RefID matches Claim.ID.
	RefID RefKind = iota
	// RefNumber matches Claim.ClaimNumber exactly, case-sensitive.
	RefNumber
)

// ClaimRef is an unambiguous lookup predicate produced from a caller-supplied
// identifier. Raw preserves the original input for diagnostics.
type ClaimRef struct {
	Kind   RefKind
	ID     int64
	Number string
	Raw    string
}

// ResolveClaimRef classifies an identifier as a numeric primary key or an opaque
// business identifier. It never fails: any non-integer string is treated as a
// candidate claim number.
func ResolveClaimRef(identifier string) ClaimRef {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return ClaimRef{Kind: RefID, ID: id, Raw: identifier}
	}
	return ClaimRef{Kind: RefNumber, Number: identifier, Raw: identifier}
}
