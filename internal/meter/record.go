// Package meter runs an end-to-end scan: it walks the tree, feeds relevant
// files to an execution backend, classifies their lines, and aggregates
// per-language and global statistics.
package meter

import (
	"sync/atomic"

	"github.com/nboyd-dev/tally/internal/classify"
)

// Record accumulates statistics for one language over one run. Records are
// created once on first sight of a language, never removed, and updated
// with atomic adds so the per-file hot path takes no lock.
type Record struct {
	// Language is the canonical language name; extensions sharing a
	// language share one record.
	Language string
	// Family is the cached comment family used to classify this
	// language's files.
	Family classify.Family

	files   atomic.Uint64
	total   atomic.Uint64
	blank   atomic.Uint64
	comment atomic.Uint64
}

// Accumulate folds one file's tally into the record.
func (r *Record) Accumulate(st classify.Stats) {
	r.files.Add(1)
	r.total.Add(st.Total)
	r.blank.Add(st.Blank)
	r.comment.Add(st.Comment)
}

// Files returns the file count.
func (r *Record) Files() uint64 { return r.files.Load() }

// Stats returns the record's line tally. A mid-run read may observe a
// partial sum, never a negative or double-counted one.
func (r *Record) Stats() classify.Stats {
	return classify.Stats{
		Total:   r.total.Load(),
		Blank:   r.blank.Load(),
		Comment: r.comment.Load(),
	}
}
