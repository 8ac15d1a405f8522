package types

// ConflictEntry is one target file that blocks linking for a group.
type ConflictEntry struct {
	TargetPath string `json:"target_path" yaml:"target_path"`
	Reason     string `json:"reason" yaml:"reason"`
}

// GroupConflicts pairs a group with its conflict entries, in report order.
type GroupConflicts struct {
	Group   string
	Entries []ConflictEntry
}

// SnapshotData is the mutable input used to build a StatusSnapshot.
type SnapshotData struct {
	Linked      []string
	Unlinked    []string
	Unsupported []string
	Nonexistent []string
	Conflicts   []GroupConflicts
}

// StatusSnapshot is one immutable status report. It is never updated in
// place; callers re-query to get a newer one.
type StatusSnapshot struct {
	linked      []string
	unlinked    []string
	unsupported []string
	nonexistent []string

	conflictGroups []string
	conflicts      map[string][]ConflictEntry
}

// NewStatusSnapshot copies data into a new snapshot. Conflict groups keep
// the order given; a group listed twice keeps its first position and the
// entries of both listings.
func NewStatusSnapshot(data SnapshotData) *StatusSnapshot {
	s := &StatusSnapshot{
		linked:      copyStrings(data.Linked),
		unlinked:    copyStrings(data.Unlinked),
		unsupported: copyStrings(data.Unsupported),
		nonexistent: copyStrings(data.Nonexistent),
		conflicts:   make(map[string][]ConflictEntry, len(data.Conflicts)),
	}

	for _, gc := range data.Conflicts {
		if _, seen := s.conflicts[gc.Group]; !seen {
			s.conflictGroups = append(s.conflictGroups, gc.Group)
		}
		s.conflicts[gc.Group] = append(s.conflicts[gc.Group], gc.Entries...)
	}

	return s
}

// Linked returns the groups already fully linked.
func (s *StatusSnapshot) Linked() []string { return copyStrings(s.linked) }

// Unlinked returns the groups that are not linked yet.
func (s *StatusSnapshot) Unlinked() []string { return copyStrings(s.unlinked) }

// Unsupported returns the groups not supported on this platform.
func (s *StatusSnapshot) Unsupported() []string { return copyStrings(s.unsupported) }

// Nonexistent returns the groups that do not exist in the dotfiles repo.
func (s *StatusSnapshot) Nonexistent() []string { return copyStrings(s.nonexistent) }

// ConflictGroups returns the groups present in the conflict mapping, in
// report order. A group may be present with zero entries.
func (s *StatusSnapshot) ConflictGroups() []string { return copyStrings(s.conflictGroups) }

// Conflicts returns the conflict entries recorded for group.
func (s *StatusSnapshot) Conflicts(group string) []ConflictEntry {
	entries := s.conflicts[group]
	if len(entries) == 0 {
		return nil
	}
	out := make([]ConflictEntry, len(entries))
	copy(out, entries)
	return out
}

// HasConflicts reports whether group has at least one conflict entry.
func (s *StatusSnapshot) HasConflicts(group string) bool {
	return len(s.conflicts[group]) > 0
}

// PendingGroups returns every group that needs linking work: the conflict
// mapping in report order, followed by unlinked groups not already listed.
func (s *StatusSnapshot) PendingGroups() []string {
	seen := make(map[string]bool, len(s.conflictGroups)+len(s.unlinked))
	var groups []string
	for _, g := range s.conflictGroups {
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	for _, g := range s.unlinked {
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
