package csvsearch

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/nao1215/csvsearch/domain/model"
)

// CommandKind identifies what a statement does.
type CommandKind int

const (
	// CommandQuery forwards the statement to the relational engine
	CommandQuery CommandKind = iota
	// CommandQuit ends the session
	CommandQuit
	// CommandHelp prints the usage banner
	CommandHelp
	// CommandClear clears the screen
	CommandClear
	// CommandVersion prints the program name and version
	CommandVersion
	// CommandTables lists relations
	CommandTables
	// CommandColumns describes one relation
	CommandColumns
	// CommandImport loads a file as a relation
	CommandImport
)

// String returns the name of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandQuery:
		return "query"
	case CommandQuit:
		return "quit"
	case CommandHelp:
		return "help"
	case CommandClear:
		return "clear"
	case CommandVersion:
		return "version"
	case CommandTables:
		return "tables"
	case CommandColumns:
		return "columns"
	case CommandImport:
		return "import"
	default:
		return "unknown"
	}
}

// Keywords are the case-insensitive spellings of each meta-command.
type Keywords struct {
	Quit    []string `yaml:"quit"`
	Help    []string `yaml:"help"`
	Clear   []string `yaml:"clear"`
	Version []string `yaml:"version"`
	Tables  []string `yaml:"tables"`
	Columns []string `yaml:"columns"`
	Import  []string `yaml:"import"`
}

// DefaultKeywords returns the built-in meta-command spellings.
func DefaultKeywords() Keywords {
	return Keywords{
		Quit:    []string{"quit", "exit", "q"},
		Help:    []string{"help", "h"},
		Clear:   []string{"clear"},
		Version: []string{"version"},
		Tables:  []string{"tables"},
		Columns: []string{"columns"},
		Import:  []string{"import"},
	}
}

// withDefaults fills every empty keyword list from DefaultKeywords.
func (kw Keywords) withDefaults() Keywords {
	def := DefaultKeywords()
	fill := func(dst *[]string, src []string) {
		if len(*dst) == 0 {
			*dst = src
		}
	}
	fill(&kw.Quit, def.Quit)
	fill(&kw.Help, def.Help)
	fill(&kw.Clear, def.Clear)
	fill(&kw.Version, def.Version)
	fill(&kw.Tables, def.Tables)
	fill(&kw.Columns, def.Columns)
	fill(&kw.Import, def.Import)
	return kw
}

// Command is a classified statement.
type Command struct {
	Kind CommandKind
	// Arg is the relation name of columns or the path of import
	Arg string
	// As is the relation name requested by "import <path> as <name>"
	As string
	// Directive is the parsed statement of a CommandQuery
	Directive model.Directive
}

// Classify decides what stmt does. Bare meta-commands must match a keyword
// exactly; columns and import match on their first word. Everything else is
// a query directive.
func Classify(stmt string, kw Keywords) Command {
	stmt = strings.TrimSpace(stmt)
	word, rest := stmt, ""
	if i := strings.IndexFunc(stmt, unicode.IsSpace); i >= 0 {
		word, rest = stmt[:i], strings.TrimSpace(stmt[i:])
	}

	switch {
	case rest == "" && matches(kw.Quit, word):
		return Command{Kind: CommandQuit}
	case rest == "" && matches(kw.Help, word):
		return Command{Kind: CommandHelp}
	case rest == "" && matches(kw.Clear, word):
		return Command{Kind: CommandClear}
	case rest == "" && matches(kw.Version, word):
		return Command{Kind: CommandVersion}
	case rest == "" && matches(kw.Tables, word):
		return Command{Kind: CommandTables}
	case matches(kw.Columns, word):
		return Command{Kind: CommandColumns, Arg: unquote(rest)}
	case matches(kw.Import, word):
		path, as := splitImportArgs(rest)
		return Command{Kind: CommandImport, Arg: path, As: as}
	}
	return Command{Kind: CommandQuery, Directive: model.ParseDirective(stmt)}
}

func matches(keywords []string, word string) bool {
	return slices.ContainsFunc(keywords, func(k string) bool {
		return strings.EqualFold(k, word)
	})
}

// importAsPattern matches "<path> as <name>".
var importAsPattern = regexp.MustCompile(`(?is)^(.+?)\s+as\s+(\S+)$`)

// splitImportArgs splits "<path> [as <name>]".
func splitImportArgs(args string) (path, as string) {
	if m := importAsPattern.FindStringSubmatch(args); m != nil {
		return unquote(m[1]), unquote(m[2])
	}
	return unquote(args), ""
}

// unquote removes one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
