package credential

import "anoncred/commit"

// Level is a roster access tier. Ordering is Owner > Admin > User: an Owner
// entry satisfies an Admin or User membership check, and an Admin entry
// satisfies a User check.
type Level int

const (
	User Level = iota
	Admin
	Owner
)

func (l Level) rank() int { return int(l) }

// RosterEntry maps a user to a Pedersen commitment of their unique
// attribute, so that membership can be checked without revealing the
// attribute.
type RosterEntry struct {
	CommittedAttribute commit.Pedersen
}

// Roster is a tiered, insertion-ordered group-membership list.
type Roster struct {
	GroupID string
	owners  []RosterEntry
	admins  []RosterEntry
	users   []RosterEntry
}

// NewRoster creates an empty roster for the given group identifier.
func NewRoster(groupID string) *Roster {
	return &Roster{GroupID: groupID}
}

// Add inserts entry at the given tier, preserving insertion order.
func (r *Roster) Add(level Level, entry RosterEntry) {
	switch level {
	case Owner:
		r.owners = append(r.owners, entry)
	case Admin:
		r.admins = append(r.admins, entry)
	default:
		r.users = append(r.users, entry)
	}
}

func (r *Roster) tier(level Level) []RosterEntry {
	switch level {
	case Owner:
		return r.owners
	case Admin:
		return r.admins
	default:
		return r.users
	}
}

// Owners, Admins, Users expose the roster's tiers in insertion order.
func (r *Roster) Owners() []RosterEntry { return append([]RosterEntry(nil), r.owners...) }
func (r *Roster) Admins() []RosterEntry { return append([]RosterEntry(nil), r.admins...) }
func (r *Roster) Users() []RosterEntry  { return append([]RosterEntry(nil), r.users...) }

// containsAtOrAbove reports whether entry is present in any tier ranked at
// or above required.
func (r *Roster) containsAtOrAbove(required Level, entry RosterEntry) bool {
	for lvl := Owner; lvl.rank() >= required.rank(); lvl-- {
		for _, e := range r.tier(lvl) {
			if e.CommittedAttribute.C.Equal(entry.CommittedAttribute.C) {
				return true
			}
		}
	}
	return false
}
