package main

import (
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/nboyd-dev/tally/internal/langmap"
	"github.com/nboyd-dev/tally/internal/output"
)

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:   "languages",
		Usage:  "List recognized languages, their extensions, and comment families",
		Action: runLanguages,
	}
}

type languageInfo struct {
	Language   string   `json:"language"`
	Family     string   `json:"family"`
	Extensions []string `json:"extensions"`
}

func runLanguages(c *cli.Context) error {
	resolver := langmap.NewBuiltinResolver()

	byLanguage := make(map[string][]string)
	for _, m := range resolver.Mappings() {
		byLanguage[m.Language] = append(byLanguage[m.Language], m.Ext)
	}

	infos := make([]languageInfo, 0, len(byLanguage))
	for lang, exts := range byLanguage {
		sort.Strings(exts)
		infos = append(infos, languageInfo{
			Language:   lang,
			Family:     langmap.FamilyOf(lang).String(),
			Extensions: exts,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Language < infos[j].Language
	})

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Language,
			info.Family,
			strings.Join(info.Extensions, " "),
		})
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), !c.Bool("no-color"))
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		"Languages",
		[]string{"Language", "Family", "Extensions"},
		rows,
		nil,
		infos,
	)
	return formatter.Output(table)
}
