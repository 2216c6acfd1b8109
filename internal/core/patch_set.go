package core

import (
	"kustomate/internal/core/domain"
)

// PatchSet accumulates patch records across intents, merging records that
// address the same object identity into one. Iteration over intents is
// strictly sequential, so the set needs no locking.
type PatchSet struct {
	byKey map[string]*domain.PatchRecord
	order []string
}

func NewPatchSet() *PatchSet {
	return &PatchSet{
		byKey: make(map[string]*domain.PatchRecord),
	}
}

// Add seeds the set with a record, or deep-merges the record's patch into
// the existing one sharing its identity. The merged record's rendered text
// forms are regenerated so they stay consistent with the merged tree.
func (s *PatchSet) Add(record *domain.PatchRecord) error {
	key := record.Key()

	existing, ok := s.byKey[key]
	if !ok {
		s.byKey[key] = record
		s.order = append(s.order, key)
		return nil
	}

	existing.Patch.Merge(record.Patch)
	return existing.Render()
}

// Records returns the merged records in the order their identities were
// first seen.
func (s *PatchSet) Records() []*domain.PatchRecord {
	records := make([]*domain.PatchRecord, 0, len(s.order))
	for _, key := range s.order {
		records = append(records, s.byKey[key])
	}
	return records
}

// Len returns the number of distinct object identities in the set.
func (s *PatchSet) Len() int {
	return len(s.order)
}
