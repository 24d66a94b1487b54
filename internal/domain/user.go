package domain

import "strings"

// User is the identity shape supplied by the authentication layer.
type User struct {
	ID          string
	DisplayName string
	Email       string
	// Privileged users see every transaction; others see only their own.
	Privileged bool
}

// Owns reports whether the user recorded the transaction. Comparison is an
// exact match on the stable user ID.
func (u User) Owns(tx Transaction) bool {
	return u.ID != "" && tx.RecordedBy == u.ID
}

// MatchesLegacyName compares a recordedBy value against a display name the
// way data recorded before stable IDs did: both sides lowered and stripped
// of a trailing @gmail.com. Two distinct users sharing a local part collide
// under this rule, so nothing calls it unless legacy data requires it.
func MatchesLegacyName(recordedBy, name string) bool {
	strip := func(s string) string {
		return strings.ToLower(strings.TrimSuffix(s, "@gmail.com"))
	}
	return strip(recordedBy) == strip(name)
}

// Scope restricts which transactions a vault computation or listing sees.
type Scope struct {
	all        bool
	recordedBy string
}

// ScopeAll includes every transaction.
func ScopeAll() Scope { return Scope{all: true} }

// ScopeUser includes only transactions recorded by the given user ID.
func ScopeUser(id string) Scope { return Scope{recordedBy: id} }

// ScopeFor returns the scope appropriate for the user's privilege.
func ScopeFor(u User) Scope {
	if u.Privileged {
		return ScopeAll()
	}
	return ScopeUser(u.ID)
}

// Includes reports whether the transaction is visible under the scope.
func (s Scope) Includes(tx Transaction) bool {
	return s.all || tx.RecordedBy == s.recordedBy
}
