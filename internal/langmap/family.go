package langmap

import "github.com/nboyd-dev/tally/internal/classify"

// familyByLanguage maps each known language to its comment family.
// Languages absent from this map get FamilyNone.
var familyByLanguage = map[string]classify.Family{
	"C":           classify.FamilyC,
	"C Header":    classify.FamilyC,
	"C++":         classify.FamilyC,
	"C++ Header":  classify.FamilyC,
	"C#":          classify.FamilyC,
	"Objective-C": classify.FamilyC,
	"Go":          classify.FamilyC,
	"Rust":        classify.FamilyC,
	"Java":        classify.FamilyC,
	"Kotlin":      classify.FamilyC,
	"Scala":       classify.FamilyC,
	"Swift":       classify.FamilyC,
	"JavaScript":  classify.FamilyC,
	"TypeScript":  classify.FamilyC,
	"Dart":        classify.FamilyC,
	"PHP":         classify.FamilyC,
	"CSS":         classify.FamilyC,
	"SCSS":        classify.FamilyC,
	"Less":        classify.FamilyC,
	"Groovy":      classify.FamilyC,
	"Zig":         classify.FamilyC,
	"D":           classify.FamilyC,
	"Solidity":    classify.FamilyC,
	"Protobuf":    classify.FamilyC,

	"Python":       classify.FamilyHash,
	"Ruby":         classify.FamilyHash,
	"Perl":         classify.FamilyHash,
	"Shell":        classify.FamilyHash,
	"Makefile":     classify.FamilyHash,
	"CMake":        classify.FamilyHash,
	"Dockerfile":   classify.FamilyHash,
	"YAML":         classify.FamilyHash,
	"TOML":         classify.FamilyHash,
	"R":            classify.FamilyHash,
	"Julia":        classify.FamilyHash,
	"Elixir":       classify.FamilyHash,
	"Nim":          classify.FamilyHash,
	"PowerShell":   classify.FamilyHash,
	"Tcl":          classify.FamilyHash,
	"Awk":          classify.FamilyHash,
	"Crystal":      classify.FamilyHash,
	"Terraform":    classify.FamilyHash,
	"Nix":          classify.FamilyHash,
	"Gitignore":    classify.FamilyHash,
	"Properties":   classify.FamilyHash,

	"SQL":     classify.FamilyDash,
	"Haskell": classify.FamilyDash,
	"Lua":     classify.FamilyDash,
	"Ada":     classify.FamilyDash,
	"VHDL":    classify.FamilyDash,
	"Elm":     classify.FamilyDash,

	"Lisp":       classify.FamilySemicolon,
	"Scheme":     classify.FamilySemicolon,
	"Clojure":    classify.FamilySemicolon,
	"Assembly":   classify.FamilySemicolon,
	"INI":        classify.FamilySemicolon,
	"Emacs Lisp": classify.FamilySemicolon,

	"TeX":      classify.FamilyPercent,
	"Erlang":   classify.FamilyPercent,
	"MATLAB":   classify.FamilyPercent,
	"Prolog":   classify.FamilyPercent,
	"PostScript": classify.FamilyPercent,

	"HTML":     classify.FamilyXML,
	"XML":      classify.FamilyXML,
	"XSLT":     classify.FamilyXML,
	"SVG":      classify.FamilyXML,
	"Markdown": classify.FamilyXML,
	"Vue":      classify.FamilyXML,

	"JSON": classify.FamilyNone,
	"CSV":  classify.FamilyNone,
	"Text": classify.FamilyNone,
}

// FamilyOf returns the comment family for a language name. Unknown
// languages fall back to the no-comments family, which still counts lines
// through the same scanner with comment recognition disabled.
func FamilyOf(language string) classify.Family {
	if f, ok := familyByLanguage[language]; ok {
		return f
	}
	return classify.FamilyNone
}
