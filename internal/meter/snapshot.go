package meter

import "sort"

// LanguageStat is one per-language row of a finalized snapshot.
type LanguageStat struct {
	Language string `json:"language"`
	Files    uint64 `json:"files"`
	Blank    uint64 `json:"blank"`
	Comment  uint64 `json:"comment"`
	Code     uint64 `json:"code"`
	Total    uint64 `json:"total"`
}

// FileStat is one per-file row, populated when by-file reporting is on.
type FileStat struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Blank    uint64 `json:"blank"`
	Comment  uint64 `json:"comment"`
	Code     uint64 `json:"code"`
	Total    uint64 `json:"total"`
}

// Totals is the global rollup across all languages.
type Totals struct {
	Files   uint64 `json:"files"`
	Blank   uint64 `json:"blank"`
	Comment uint64 `json:"comment"`
	Code    uint64 `json:"code"`
	Total   uint64 `json:"total"`
}

// Snapshot is the finalized result of one run, available only after the
// backend has drained.
type Snapshot struct {
	Languages []LanguageStat `json:"languages"`
	Files     []FileStat     `json:"files,omitempty"`
	Total     Totals         `json:"total"`
	Ignored   uint64         `json:"ignored"`
	Elapsed   float64        `json:"elapsed_seconds"`
	Errors    []string       `json:"errors,omitempty"`
}

// Sort orders the language rows by the given key (code, files, total,
// blank, comment, or language), descending for counters with language name
// as tie-break. Per-file rows sort by path.
func (s *Snapshot) Sort(by string) {
	key := func(l LanguageStat) uint64 {
		switch by {
		case "files":
			return l.Files
		case "total":
			return l.Total
		case "blank":
			return l.Blank
		case "comment":
			return l.Comment
		default:
			return l.Code
		}
	}

	sort.Slice(s.Languages, func(i, j int) bool {
		if by == "language" {
			return s.Languages[i].Language < s.Languages[j].Language
		}
		ki, kj := key(s.Languages[i]), key(s.Languages[j])
		if ki != kj {
			return ki > kj
		}
		return s.Languages[i].Language < s.Languages[j].Language
	})

	sort.Slice(s.Files, func(i, j int) bool {
		return s.Files[i].Path < s.Files[j].Path
	})
}
