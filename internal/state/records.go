package state

import "github.com/bianoble/scriptpm/internal/script"

// Upsert removes any record sharing rec.ID and appends rec. The input slice
// is not modified.
func Upsert(records []script.Record, rec script.Record) []script.Record {
	out := Remove(records, rec.ID)
	return append(out, rec)
}

// Remove returns a copy of records without the record whose id is id.
func Remove(records []script.Record, id string) []script.Record {
	out := make([]script.Record, 0, len(records)+1)
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// InsertAt returns a copy of records with rec placed at index i, clamped to
// the slice bounds. Any existing record with the same id is dropped first.
func InsertAt(records []script.Record, i int, rec script.Record) []script.Record {
	out := Remove(records, rec.ID)
	if i < 0 {
		i = 0
	}
	if i > len(out) {
		i = len(out)
	}
	out = append(out, script.Record{})
	copy(out[i+1:], out[i:])
	out[i] = rec
	return out
}

// Normalize folds records through Upsert so ids are unique.
func Normalize(records []script.Record) []script.Record {
	out := make([]script.Record, 0, len(records))
	for _, r := range records {
		out = Upsert(out, r)
	}
	return out
}
