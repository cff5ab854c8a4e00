package shell

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/gomoku/ai/player"
)

// ShellCompleter provides context-aware autocomplete for shell commands.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command.
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Options: []string{"-width", "-height", "-holes", "-whitefirst"}},
	"load":     {Options: []string{"-step", "-whitefirst"}},
	"save":     {Options: []string{"-format"}},
	"show":     {},
	"play":     {},
	"ai":       {Args: player.Names()},
	"gen":      {},
	"score":    {},
	"undo":     {},
	"autoplay": {Options: []string{"-black", "-white", "-threads"}},
	"help":     {},
	"exit":     {},
}

func commandNames() []string {
	names := lo.Keys(commandMetadata)
	slices.Sort(names)
	return names
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		return nil, 0
	}
	endsWithSpace := strings.HasSuffix(text, " ")
	var prefix string
	if !endsWithSpace && len(fields) > 0 {
		prefix = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}

	var candidates []string
	if len(fields) == 0 {
		candidates = commandNames()
	} else {
		meta := commandMetadata[fields[0]]
		if fields[0] == "help" {
			candidates = commandNames()
		} else if strings.HasPrefix(prefix, "-") {
			candidates = meta.Options
		} else {
			candidates = meta.Args
		}
	}
	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}
