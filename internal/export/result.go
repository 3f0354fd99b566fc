package export

// ItemStatus classifies how a single issue made it into the archive.
type ItemStatus string

const (
	StatusOK       ItemStatus = "ok"       // document with all fetched data
	StatusDegraded ItemStatus = "degraded" // document written with reduced content
	StatusSkipped  ItemStatus = "skipped"  // no document; the issue could not be named
)

// ItemResult is the per-issue outcome of an export.
type ItemResult struct {
	Key      string
	Status   ItemStatus
	Reason   error // nil for StatusOK
	Comments int   // comments included in the document
}

// Result is a finished export.
type Result struct {
	Data     []byte       // ZIP archive bytes
	FileName string       // suggested download name
	Entries  []string     // archive entry names, index first
	Items    []ItemResult // one per search hit, in search order
}

// Degraded returns the items that were not exported in full.
func (r Result) Degraded() []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.Status != StatusOK {
			out = append(out, it)
		}
	}
	return out
}

// Exported returns how many issue documents the archive holds.
func (r Result) Exported() int {
	n := 0
	for _, it := range r.Items {
		if it.Status != StatusSkipped {
			n++
		}
	}
	return n
}
