package meter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nboyd-dev/tally/internal/classify"
	"github.com/nboyd-dev/tally/internal/langmap"
)

func TestAggregatorMergesMappingsBySameLanguage(t *testing.T) {
	agg := NewAggregator(4)
	yaml := &langmap.Mapping{Ext: ".yaml", Language: "YAML", Index: 0}
	yml := &langmap.Mapping{Ext: ".yml", Language: "YAML", Index: 1}
	goMap := &langmap.Mapping{Ext: ".go", Language: "Go", Index: 2}

	r1 := agg.RecordFor(yaml)
	r2 := agg.RecordFor(yml)
	r3 := agg.RecordFor(goMap)

	assert.Same(t, r1, r2, "extensions of one language share a record")
	assert.NotSame(t, r1, r3)
	require.Len(t, agg.Records(), 2)
}

func TestAggregatorCachedLookupIsStable(t *testing.T) {
	agg := NewAggregator(1)
	m := &langmap.Mapping{Ext: ".rs", Language: "Rust", Index: 0}

	first := agg.RecordFor(m)
	assert.Equal(t, classify.FamilyC, first.Family)
	for i := 0; i < 100; i++ {
		assert.Same(t, first, agg.RecordFor(m))
	}
}

func TestAggregatorConcurrentRecordFor(t *testing.T) {
	agg := NewAggregator(2)
	a := &langmap.Mapping{Ext: ".c", Language: "C", Index: 0}
	b := &langmap.Mapping{Ext: ".h", Language: "C", Index: 1}

	const goroutines = 16
	results := make([]*Record, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := a
			if i%2 == 1 {
				m = b
			}
			results[i] = agg.RecordFor(m)
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Len(t, agg.Records(), 1)
}

func TestAggregatorGlobalsMatchRecords(t *testing.T) {
	agg := NewAggregator(2)
	goRec := agg.RecordFor(&langmap.Mapping{Ext: ".go", Language: "Go", Index: 0})
	pyRec := agg.RecordFor(&langmap.Mapping{Ext: ".py", Language: "Python", Index: 1})

	agg.Accumulate(goRec, classify.Stats{Total: 10, Blank: 2, Comment: 3})
	agg.Accumulate(goRec, classify.Stats{Total: 4, Blank: 1, Comment: 0})
	agg.Accumulate(pyRec, classify.Stats{Total: 6, Blank: 0, Comment: 6})

	assert.Equal(t, uint64(3), agg.GlobalFiles())
	global := agg.GlobalStats()
	assert.Equal(t, uint64(20), global.Total)
	assert.Equal(t, uint64(3), global.Blank)
	assert.Equal(t, uint64(9), global.Comment)
	assert.Equal(t, uint64(8), global.Code())

	assert.Equal(t, uint64(2), goRec.Files())
	goStats := goRec.Stats()
	assert.Equal(t, uint64(14), goStats.Total)

	agg.Ignore()
	agg.Ignore()
	assert.Equal(t, uint64(2), agg.Ignored())
}

func TestSnapshotSort(t *testing.T) {
	snap := &Snapshot{
		Languages: []LanguageStat{
			{Language: "Python", Code: 5, Files: 9},
			{Language: "Go", Code: 20, Files: 1},
			{Language: "C", Code: 5, Files: 3},
		},
		Files: []FileStat{
			{Path: "z.go"},
			{Path: "a.go"},
		},
	}

	snap.Sort("code")
	assert.Equal(t, "Go", snap.Languages[0].Language)
	assert.Equal(t, "C", snap.Languages[1].Language, "ties break by language name")
	assert.Equal(t, "Python", snap.Languages[2].Language)
	assert.Equal(t, "a.go", snap.Files[0].Path)

	snap.Sort("files")
	assert.Equal(t, "Python", snap.Languages[0].Language)

	snap.Sort("language")
	assert.Equal(t, "C", snap.Languages[0].Language)
}
