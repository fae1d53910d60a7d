package match

import (
	"github.com/crete-bi/account-linkage/internal/normalize"
)

// maxNameLengthDiff bounds how far apart two normalized names may be in
// length and still form a candidate pair. True matches whose names differ by
// more are lost; that recall loss is accepted in exchange for near-linear
// candidate generation.
const maxNameLengthDiff = 3

// Blocker generates candidate pairs by joining source and reference records
// on the uppercased first letter of their normalized names.
type Blocker struct {
	version normalize.Version
}

// NewBlocker creates a blocker using the given normalizer version.
func NewBlocker(version normalize.Version) *Blocker {
	return &Blocker{version: version}
}

// Block joins the two collections on blocking key and keeps pairs whose
// normalized-name length difference is within bounds. Records with empty
// normalized names produce no candidates.
func (b *Blocker) Block(sources []SourceRecord, references []ReferenceRecord) []CandidatePair {
	type refEntry struct {
		ref     *ReferenceRecord
		nameLen int
	}

	byKey := make(map[string][]refEntry, 26)
	for i := range references {
		norm := normalize.Name(references[i].Name, b.version)
		key := normalize.BlockingKey(norm)
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], refEntry{ref: &references[i], nameLen: len(norm)})
	}

	var pairs []CandidatePair
	for i := range sources {
		norm := normalize.Name(sources[i].Name, b.version)
		key := normalize.BlockingKey(norm)
		if key == "" {
			continue
		}
		for _, entry := range byKey[key] {
			diff := len(norm) - entry.nameLen
			if diff < 0 {
				diff = -diff
			}
			if diff > maxNameLengthDiff {
				continue
			}
			pairs = append(pairs, CandidatePair{
				Source:      &sources[i],
				Reference:   entry.ref,
				BlockingKey: key,
			})
		}
	}

	return pairs
}
