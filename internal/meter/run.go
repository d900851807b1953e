package meter

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/nboyd-dev/tally/internal/backend"
	"github.com/nboyd-dev/tally/internal/classify"
	"github.com/nboyd-dev/tally/internal/langmap"
	"github.com/nboyd-dev/tally/internal/loader"
	"github.com/nboyd-dev/tally/internal/walker"
	"github.com/nboyd-dev/tally/pkg/config"
)

// Options configures one run.
type Options struct {
	// Config supplies scan, exclusion, and output settings. Nil selects
	// the defaults.
	Config *config.Config
	// Log receives skip warnings. Nil selects slog.Default().
	Log *slog.Logger
	// OnFile, when set, is called once per submitted file after it
	// finishes processing. Safe to use for progress reporting.
	OnFile func()
}

// revision is the state of one end-to-end scan. It is created at run start
// and finalized into a Snapshot after the backend drains.
type revision struct {
	cfg      *config.Config
	log      *slog.Logger
	resolver *langmap.Resolver
	agg      *Aggregator
	errs     backend.FileErrors
	onFile   func()

	byFile  bool
	filesMu sync.Mutex
	files   []FileStat

	dedupe bool
	seenMu sync.Mutex
	seen   map[uint64]struct{}
}

// Run scans the given roots and returns a finalized snapshot. Per-file
// failures are recorded and skipped; walk-level and backend-shutdown
// failures abort the run, reporting the earliest failure when both occur.
func Run(roots []string, opts Options) (*Snapshot, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if len(roots) == 0 {
		return nil, errors.New("no scan roots given")
	}

	rev := &revision{
		cfg:      cfg,
		log:      log,
		resolver: langmap.NewBuiltinResolver(),
		onFile:   opts.OnFile,
		byFile:   cfg.Output.ByFile,
		dedupe:   cfg.Scan.Dedupe,
	}
	rev.agg = NewAggregator(rev.resolver.Len())
	if rev.dedupe {
		rev.seen = make(map[uint64]struct{})
	}

	b, err := backend.Select(
		backend.ParseKind(cfg.Scan.Backend),
		backend.PoolOptions{Workers: cfg.Scan.Workers, QueueLength: cfg.Scan.QueueLength},
		rev.processFile,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("backend init: %w", err)
	}

	start := time.Now()
	walkErr := rev.walkRoots(roots, b)
	drainErr := b.DrainAndShutdown()

	if p, ok := b.(*backend.Pool); ok {
		for _, fe := range p.Errs.All() {
			rev.agg.Ignore()
			rev.errs.Add(fe.Path, fe.Err)
		}
	}

	if walkErr != nil {
		return nil, walkErr
	}
	if drainErr != nil {
		return nil, fmt.Errorf("backend drain: %w", drainErr)
	}

	return rev.finalize(time.Since(start)), nil
}

// walkRoots enumerates every root, submitting relevant files to the
// backend.
func (rev *revision) walkRoots(roots []string, b backend.Backend) error {
	for _, root := range roots {
		exc := NewExcluder(root, rev.cfg.Exclude)
		err := walker.Walk(root, func(ent walker.Entry) error {
			if ent.IsDir {
				if exc.ExcludedDir(ent.Path, ent.Name) {
					return walker.SkipDir
				}
				return nil
			}
			if exc.ExcludedFile(ent.Path, ent.Name) {
				rev.agg.Ignore()
				return nil
			}
			if _, ok := rev.resolver.Resolve(ent.Name); !ok {
				// Not an error: the file has no language mapping.
				rev.agg.Ignore()
				return nil
			}
			if err := b.Submit(ent.Path); err != nil {
				if errors.Is(err, backend.ErrStopped) {
					return err
				}
				// Synchronous backends surface the per-file
				// status here; record it and keep walking.
				rev.agg.Ignore()
				rev.errs.Add(ent.Path, err)
			}
			return nil
		}, walker.Options{Recurse: rev.cfg.Scan.Recurse, Log: rev.log})
		if err != nil {
			return err
		}
	}
	return nil
}

// processFile is the per-file revise operation run by the backend: decode,
// classify, accumulate.
func (rev *revision) processFile(path string) error {
	defer func() {
		if rev.onFile != nil {
			rev.onFile()
		}
	}()

	view, err := loader.Load(path, rev.cfg.Scan.MaxFileSize)
	if err != nil {
		if errors.Is(err, loader.ErrTooLarge) {
			rev.log.Warn("skipping oversized file", "path", path)
			rev.agg.Ignore()
			return nil
		}
		// The caller records the failure and counts one ignore for it,
		// whichever backend ran us.
		return err
	}
	if !view.Text {
		rev.agg.Ignore()
		return nil
	}
	if rev.dedupe && rev.alreadySeen(view.Data) {
		rev.agg.Ignore()
		return nil
	}

	m, ok := rev.resolver.Resolve(filepath.Base(path))
	if !ok {
		rev.agg.Ignore()
		return nil
	}

	rec := rev.agg.RecordFor(m)
	st := classify.Count(view.Data, classify.SyntaxFor(rec.Family))
	rev.agg.Accumulate(rec, st)

	if rev.byFile {
		rev.filesMu.Lock()
		rev.files = append(rev.files, FileStat{
			Path:     path,
			Language: rec.Language,
			Blank:    st.Blank,
			Comment:  st.Comment,
			Code:     st.Code(),
			Total:    st.Total,
		})
		rev.filesMu.Unlock()
	}
	return nil
}

// alreadySeen records the content digest and reports whether identical
// content was already metered this run.
func (rev *revision) alreadySeen(data []byte) bool {
	digest := xxhash.Sum64(data)
	rev.seenMu.Lock()
	defer rev.seenMu.Unlock()
	if _, dup := rev.seen[digest]; dup {
		return true
	}
	rev.seen[digest] = struct{}{}
	return false
}

// finalize builds the snapshot from the aggregator. Totals equal the sum of
// all record counters because the backend has fully drained.
func (rev *revision) finalize(elapsed time.Duration) *Snapshot {
	snap := &Snapshot{
		Languages: make([]LanguageStat, 0, 8),
		Files:     rev.files,
		Ignored:   rev.agg.Ignored(),
		Elapsed:   elapsed.Seconds(),
	}

	for _, rec := range rev.agg.Records() {
		st := rec.Stats()
		snap.Languages = append(snap.Languages, LanguageStat{
			Language: rec.Language,
			Files:    rec.Files(),
			Blank:    st.Blank,
			Comment:  st.Comment,
			Code:     st.Code(),
			Total:    st.Total,
		})
	}

	global := rev.agg.GlobalStats()
	snap.Total = Totals{
		Files:   rev.agg.GlobalFiles(),
		Blank:   global.Blank,
		Comment: global.Comment,
		Code:    global.Code(),
		Total:   global.Total,
	}

	for _, fe := range rev.errs.All() {
		snap.Errors = append(snap.Errors, fe.Error())
	}

	snap.Sort(rev.cfg.Output.Sort)
	return snap
}
