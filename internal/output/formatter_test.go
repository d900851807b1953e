package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.Format() != FormatText {
		t.Errorf("Format() = %q, want %q", f.Format(), FormatText)
	}

	if f.file != nil {
		t.Error("file should be nil for stdout")
	}

	if f.Writer() == nil {
		t.Error("Writer() should not be nil")
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "output.txt")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.file == nil {
		t.Error("file should not be nil for file output")
	}

	if f.colored {
		t.Error("colored should be false when writing to file")
	}

	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Error("output file should exist")
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	_, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false)
	if err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func TestTableRenderText(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		colored bool
		want    []string
	}{
		{
			name: "simple_table",
			table: NewTable(
				"Line Counts",
				[]string{"Language", "Files", "Code"},
				[][]string{
					{"Go", "12", "3400"},
					{"Python", "3", "250"},
				},
				nil,
				nil,
			),
			colored: false,
			want:    []string{"Line Counts", "LANGUAGE", "FILES", "CODE", "Go", "3400", "Python"},
		},
		{
			name: "table_with_footer",
			table: NewTable(
				"Summary",
				[]string{"Language", "Code"},
				[][]string{
					{"Go", "100"},
					{"C", "80"},
				},
				[]string{"Total", "180"},
				nil,
			),
			colored: false,
			want:    []string{"Summary", "LANGUAGE", "Go", "180"},
		},
		{
			name: "no_title",
			table: NewTable(
				"",
				[]string{"A", "B"},
				[][]string{{"1", "2"}},
				nil,
				nil,
			),
			colored: false,
			want:    []string{"A", "B", "1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.table.RenderText(&buf, tt.colored)
			if err != nil {
				t.Fatalf("RenderText() error: %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("RenderText() missing %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable(
		"Counts",
		[]string{"Language", "Code"},
		[][]string{{"Go", "42"}},
		[]string{"Total", "42"},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	output := buf.String()
	want := []string{"## Counts", "| Language | Code |", "| --- | --- |", "| Go | 42 |", "| Total | 42 |"}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("RenderMarkdown() missing %q in output:\n%s", w, output)
		}
	}
}

func TestTableRenderData(t *testing.T) {
	t.Run("with_data_field", func(t *testing.T) {
		data := map[string]any{"custom": "data"}
		table := NewTable("Title", []string{"H1"}, [][]string{{"R1"}}, nil, data)

		result := table.RenderData()
		resultMap, ok := result.(map[string]any)
		if !ok {
			t.Fatal("RenderData() should return the Data field when set")
		}
		if resultMap["custom"] != "data" {
			t.Error("RenderData() should return the correct data")
		}
	})

	t.Run("without_data_field", func(t *testing.T) {
		table := NewTable(
			"Test",
			[]string{"Language", "Code"},
			[][]string{
				{"Go", "100"},
				{"C", "200"},
			},
			nil,
			nil,
		)

		result := table.RenderData()
		rows, ok := result.([]map[string]string)
		if !ok {
			t.Fatalf("RenderData() should return []map[string]string, got %T", result)
		}

		if len(rows) != 2 {
			t.Errorf("RenderData() returned %d rows, want 2", len(rows))
		}

		if rows[0]["Language"] != "Go" || rows[0]["Code"] != "100" {
			t.Errorf("RenderData() row 0 = %v", rows[0])
		}
	})
}

func TestFormatterOutputJSON(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "test.json")

	f, err := NewFormatter(FormatJSON, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	table := NewTable("Counts", []string{"Language"}, [][]string{{"Go"}}, nil,
		map[string]any{"languages": []string{"Go"}})

	if err := f.Output(table); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	langs, ok := result["languages"].([]any)
	if !ok || len(langs) != 1 || langs[0] != "Go" {
		t.Errorf("languages = %v, want [Go]", result["languages"])
	}
}

func TestFormatterOutputRaw(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "raw.json")

	f, err := NewFormatter(FormatText, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if err := f.Output(map[string]string{"key": "value"}); err != nil {
		t.Errorf("Output() error for non-renderable data: %v", err)
	}
}

func TestFormatterAllFormats(t *testing.T) {
	table := NewTable(
		"Counts",
		[]string{"Language", "Code"},
		[][]string{{"Go", "10"}},
		nil,
		nil,
	)

	for _, format := range []Format{FormatText, FormatJSON, FormatMarkdown} {
		t.Run(string(format), func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "out."+string(format))

			f, err := NewFormatter(format, outputPath, false)
			if err != nil {
				t.Fatalf("NewFormatter() error: %v", err)
			}
			defer f.Close()

			if err := f.Output(table); err != nil {
				t.Errorf("Output() error for %s: %v", format, err)
			}
			f.Close()

			content, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if len(content) == 0 {
				t.Errorf("output file for %s should not be empty", format)
			}
		})
	}
}
