package langmap

// builtins is the static extension table. Keys are lower-case and include
// the leading dot; a key covering an entire file name (".makefile") matches
// files with no conventional extension. Order matters: when two entries
// collide in the lookup table the first-listed one wins, and multi-segment
// keys (".d.ts") are matched before their shorter tails (".ts") by the
// resolver's leftmost-dot scan.
var builtins = []Mapping{
	// Whole-name keys.
	{Ext: ".makefile", Language: "Makefile"},
	{Ext: ".gnumakefile", Language: "Makefile"},
	{Ext: ".dockerfile", Language: "Dockerfile"},
	{Ext: ".cmakelists.txt", Language: "CMake"},
	{Ext: ".gemfile", Language: "Ruby"},
	{Ext: ".rakefile", Language: "Ruby"},
	{Ext: ".vagrantfile", Language: "Ruby"},
	{Ext: ".gitignore", Language: "Gitignore"},

	// Multi-segment keys, listed ahead of their tails.
	{Ext: ".d.ts", Language: "TypeScript"},
	{Ext: ".blade.php", Language: "PHP"},
	{Ext: ".cmake.in", Language: "CMake"},

	{Ext: ".c", Language: "C"},
	{Ext: ".h", Language: "C Header"},
	{Ext: ".cc", Language: "C++"},
	{Ext: ".cpp", Language: "C++"},
	{Ext: ".cxx", Language: "C++"},
	{Ext: ".hh", Language: "C++ Header"},
	{Ext: ".hpp", Language: "C++ Header"},
	{Ext: ".hxx", Language: "C++ Header"},
	{Ext: ".cs", Language: "C#"},
	{Ext: ".m", Language: "Objective-C"},
	{Ext: ".mm", Language: "Objective-C"},
	{Ext: ".go", Language: "Go"},
	{Ext: ".rs", Language: "Rust"},
	{Ext: ".java", Language: "Java"},
	{Ext: ".kt", Language: "Kotlin"},
	{Ext: ".kts", Language: "Kotlin"},
	{Ext: ".scala", Language: "Scala"},
	{Ext: ".swift", Language: "Swift"},
	{Ext: ".js", Language: "JavaScript"},
	{Ext: ".mjs", Language: "JavaScript"},
	{Ext: ".cjs", Language: "JavaScript"},
	{Ext: ".jsx", Language: "JavaScript"},
	{Ext: ".ts", Language: "TypeScript"},
	{Ext: ".tsx", Language: "TypeScript"},
	{Ext: ".dart", Language: "Dart"},
	{Ext: ".php", Language: "PHP"},
	{Ext: ".css", Language: "CSS"},
	{Ext: ".scss", Language: "SCSS"},
	{Ext: ".sass", Language: "SCSS"},
	{Ext: ".less", Language: "Less"},
	{Ext: ".groovy", Language: "Groovy"},
	{Ext: ".gradle", Language: "Groovy"},
	{Ext: ".zig", Language: "Zig"},
	{Ext: ".d", Language: "D"},
	{Ext: ".sol", Language: "Solidity"},
	{Ext: ".proto", Language: "Protobuf"},

	{Ext: ".py", Language: "Python"},
	{Ext: ".pyw", Language: "Python"},
	{Ext: ".rb", Language: "Ruby"},
	{Ext: ".pl", Language: "Perl"},
	{Ext: ".pm", Language: "Perl"},
	{Ext: ".sh", Language: "Shell"},
	{Ext: ".bash", Language: "Shell"},
	{Ext: ".zsh", Language: "Shell"},
	{Ext: ".fish", Language: "Shell"},
	{Ext: ".mk", Language: "Makefile"},
	{Ext: ".cmake", Language: "CMake"},
	{Ext: ".yaml", Language: "YAML"},
	{Ext: ".yml", Language: "YAML"},
	{Ext: ".toml", Language: "TOML"},
	{Ext: ".r", Language: "R"},
	{Ext: ".jl", Language: "Julia"},
	{Ext: ".ex", Language: "Elixir"},
	{Ext: ".exs", Language: "Elixir"},
	{Ext: ".nim", Language: "Nim"},
	{Ext: ".ps1", Language: "PowerShell"},
	{Ext: ".psm1", Language: "PowerShell"},
	{Ext: ".tcl", Language: "Tcl"},
	{Ext: ".awk", Language: "Awk"},
	{Ext: ".cr", Language: "Crystal"},
	{Ext: ".tf", Language: "Terraform"},
	{Ext: ".tfvars", Language: "Terraform"},
	{Ext: ".nix", Language: "Nix"},
	{Ext: ".properties", Language: "Properties"},

	{Ext: ".sql", Language: "SQL"},
	{Ext: ".hs", Language: "Haskell"},
	{Ext: ".lhs", Language: "Haskell"},
	{Ext: ".lua", Language: "Lua"},
	{Ext: ".ada", Language: "Ada"},
	{Ext: ".adb", Language: "Ada"},
	{Ext: ".ads", Language: "Ada"},
	{Ext: ".vhd", Language: "VHDL"},
	{Ext: ".vhdl", Language: "VHDL"},
	{Ext: ".elm", Language: "Elm"},

	{Ext: ".lisp", Language: "Lisp"},
	{Ext: ".lsp", Language: "Lisp"},
	{Ext: ".scm", Language: "Scheme"},
	{Ext: ".clj", Language: "Clojure"},
	{Ext: ".cljs", Language: "Clojure"},
	{Ext: ".cljc", Language: "Clojure"},
	{Ext: ".s", Language: "Assembly"},
	{Ext: ".asm", Language: "Assembly"},
	{Ext: ".ini", Language: "INI"},
	{Ext: ".el", Language: "Emacs Lisp"},

	{Ext: ".tex", Language: "TeX"},
	{Ext: ".sty", Language: "TeX"},
	{Ext: ".cls", Language: "TeX"},
	{Ext: ".erl", Language: "Erlang"},
	{Ext: ".hrl", Language: "Erlang"},
	{Ext: ".pro", Language: "Prolog"},
	{Ext: ".ps", Language: "PostScript"},

	{Ext: ".html", Language: "HTML"},
	{Ext: ".htm", Language: "HTML"},
	{Ext: ".xml", Language: "XML"},
	{Ext: ".xsl", Language: "XSLT"},
	{Ext: ".xslt", Language: "XSLT"},
	{Ext: ".svg", Language: "SVG"},
	{Ext: ".md", Language: "Markdown"},
	{Ext: ".markdown", Language: "Markdown"},
	{Ext: ".vue", Language: "Vue"},

	{Ext: ".json", Language: "JSON"},
	{Ext: ".csv", Language: "CSV"},
	{Ext: ".txt", Language: "Text"},
}

// Builtins returns a copy of the static table.
func Builtins() []Mapping {
	return append([]Mapping(nil), builtins...)
}
