package registry

import "fmt"

// ModifiedEntry pairs the accepted and proposed versions of an entry whose
// fields changed between two registry snapshots.
type ModifiedEntry struct {
	Old Entry `json:"old" yaml:"old"`
	New Entry `json:"new" yaml:"new"`

	// NewIndex is the record index of the entry in the proposed registry.
	NewIndex int `json:"new_index" yaml:"new_index"`
}

// ChangeSet describes the difference between two registry snapshots, keyed by
// case-insensitive entry name. Slices preserve the order of the registry the
// entries came from (new for added/modified, old for removed).
type ChangeSet struct {
	Added    []Entry         `json:"added" yaml:"added"`
	Removed  []Entry         `json:"removed" yaml:"removed"`
	Modified []ModifiedEntry `json:"modified" yaml:"modified"`
}

// Additive reports whether the change only appends new entries, the expected
// shape of a community contribution.
func (c ChangeSet) Additive() bool {
	return len(c.Removed) == 0 && len(c.Modified) == 0
}

// Warnings converts non-additive changes into ExistingEntryModified findings.
// These are reviewable but never block acceptance on their own.
func (c ChangeSet) Warnings() []Violation {
	var out []Violation
	for _, m := range c.Modified {
		out = append(out, Violation{
			Index:    m.NewIndex,
			Kind:     KindExistingEntryModified,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("existing entry '%s' was modified", m.Old.Name),
		})
	}
	for _, e := range c.Removed {
		out = append(out, Violation{
			Index:    DocumentIndex,
			Kind:     KindExistingEntryModified,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("existing entry '%s' was removed", e.Name),
		})
	}
	return out
}

// Diff computes the entries added, removed, and modified between the accepted
// registry and a proposed one. It is a pure function over the two snapshots.
// When a snapshot contains duplicate names only the first occurrence
// participates; duplicates are a validation concern, not a diffing one.
func Diff(old, proposed Registry) ChangeSet {
	oldByKey := make(map[string]Entry, len(old))
	for _, e := range old {
		if _, ok := oldByKey[e.Key()]; !ok {
			oldByKey[e.Key()] = e
		}
	}

	var cs ChangeSet

	seen := make(map[string]struct{}, len(proposed))
	for i, e := range proposed {
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}

		prior, existed := oldByKey[e.Key()]
		switch {
		case !existed:
			cs.Added = append(cs.Added, e)
		case prior != e:
			cs.Modified = append(cs.Modified, ModifiedEntry{Old: prior, New: e, NewIndex: i})
		}
	}

	for _, e := range old {
		if _, ok := seen[e.Key()]; ok {
			continue
		}
		seen[e.Key()] = struct{}{}
		cs.Removed = append(cs.Removed, e)
	}

	return cs
}
