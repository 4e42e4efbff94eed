package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// ValidateE164 checks that s is "+" followed by 2 to 15 digits, the first
// of which is not zero.
func ValidateE164(s string) error {
	if !e164Pattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, s)
	}
	return nil
}

// SenderKind distinguishes numeric senders from alpha tags.
type SenderKind int

const (
	SenderAlpha SenderKind = iota
	SenderNumeric
)

func (k SenderKind) String() string {
	if k == SenderNumeric {
		return "numeric"
	}
	return "alpha"
}

// SenderIdentity is a requested originator, either an E.164 number or a
// registered alpha tag.
type SenderIdentity struct {
	Kind  SenderKind
	Value string
}

// ParseSender classifies raw by its leading "+". The value is kept verbatim.
func ParseSender(raw string) SenderIdentity {
	if strings.HasPrefix(raw, "+") {
		return SenderIdentity{Kind: SenderNumeric, Value: raw}
	}
	return SenderIdentity{Kind: SenderAlpha, Value: raw}
}

// StringSet is an unordered set of directory entries.
type StringSet map[string]struct{}

// NewStringSet builds a set from values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports exact membership.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// DirectorySnapshot is what a single authorization check saw.
type DirectorySnapshot struct {
	Verified  StringSet
	Dedicated StringSet
	AlphaTags StringSet
}
