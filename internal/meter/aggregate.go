package meter

import (
	"sync"
	"sync/atomic"

	"github.com/nboyd-dev/tally/internal/classify"
	"github.com/nboyd-dev/tally/internal/langmap"
)

// Aggregator owns the record collection and the global counters. Record
// lookup has a lock-free fast path through a per-mapping cached reference;
// the slow path runs under one mutex, merging extensions by language name
// before creating a new record.
type Aggregator struct {
	mu      sync.Mutex
	records []*Record

	// cache is indexed by langmap.Mapping.Index. Each slot is written
	// once; concurrent first-sight writers race benignly since the value
	// for a given mapping never differs.
	cache []atomic.Pointer[Record]

	files   atomic.Uint64
	total   atomic.Uint64
	blank   atomic.Uint64
	comment atomic.Uint64
	ignored atomic.Uint64
}

// NewAggregator creates an aggregator for a resolver table of the given
// size.
func NewAggregator(tableLen int) *Aggregator {
	return &Aggregator{cache: make([]atomic.Pointer[Record], tableLen)}
}

// RecordFor returns the record for a mapping, creating it on first sight of
// the mapping's language. Two mappings with the same language name share
// one record.
func (a *Aggregator) RecordFor(m *langmap.Mapping) *Record {
	if r := a.cache[m.Index].Load(); r != nil {
		return r
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if r := a.cache[m.Index].Load(); r != nil {
		return r
	}
	for _, r := range a.records {
		if r.Language == m.Language {
			a.cache[m.Index].Store(r)
			return r
		}
	}

	r := &Record{Language: m.Language, Family: langmap.FamilyOf(m.Language)}
	a.records = append(a.records, r)
	a.cache[m.Index].Store(r)
	return r
}

// Accumulate folds one file's tally into its record and the global totals.
func (a *Aggregator) Accumulate(r *Record, st classify.Stats) {
	r.Accumulate(st)
	a.files.Add(1)
	a.total.Add(st.Total)
	a.blank.Add(st.Blank)
	a.comment.Add(st.Comment)
}

// Ignore counts one skipped file.
func (a *Aggregator) Ignore() {
	a.ignored.Add(1)
}

// Records returns the current record collection.
func (a *Aggregator) Records() []*Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Record(nil), a.records...)
}

// Ignored returns the skipped-file count.
func (a *Aggregator) Ignored() uint64 {
	return a.ignored.Load()
}

// GlobalFiles returns the global file count.
func (a *Aggregator) GlobalFiles() uint64 {
	return a.files.Load()
}

// GlobalStats returns the global line tally. Once the backend has drained
// this equals the sum of all record counters.
func (a *Aggregator) GlobalStats() classify.Stats {
	return classify.Stats{
		Total:   a.total.Load(),
		Blank:   a.blank.Load(),
		Comment: a.comment.Load(),
	}
}
