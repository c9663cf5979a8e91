package script

// Record identifies one script and the version of it that is published
// or installed.
type Record struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Hash    string `json:"hash"` // hex sha256 of the file bytes
}

// SameVersion reports whether r and other carry the same version string.
// Versions are opaque and never ordered.
func (r Record) SameVersion(other Record) bool {
	return r.Version == other.Version
}

// Index returns the position of the record with the given id, or -1.
func Index(records []Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the record with the given id.
func Find(records []Record, id string) (Record, bool) {
	if i := Index(records, id); i >= 0 {
		return records[i], true
	}
	return Record{}, false
}
