package turbobunny

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Match is the result of matching a query against the command table.
type Match struct {
	Command *Command
	Matcher string
	Args    string
}

// Completion is one matcher that could complete a partial query.
type Completion struct {
	Command *Command
	Matcher string
}

type tableOptions struct {
	fallback      mo.Option[Command]
	fqdn          string
	resourcesPath string
}

type TableOption func(*tableOptions)

func WithFallback(fallback Command) TableOption {
	return func(o *tableOptions) {
		o.fallback = mo.Some(fallback.clone())
	}
}

func WithFQDN(fqdn string) TableOption {
	return func(o *tableOptions) {
		o.fqdn = fqdn
	}
}

func WithResourcesPath(path string) TableOption {
	return func(o *tableOptions) {
		o.resourcesPath = path
	}
}

// CommandTable is an ordered, immutable set of commands. It is built once and
// may be read from any number of goroutines without coordination.
type CommandTable struct {
	commands      []Command
	fallback      mo.Option[Command]
	fqdn          string
	resourcesPath string
}

func NewCommandTable(commands []Command, opts ...TableOption) *CommandTable {
	o := &tableOptions{
		fallback: mo.None[Command](),
		fqdn:     "0.0.0.0",
	}

	for _, opt := range opts {
		opt(o)
	}

	t := &CommandTable{
		commands:      make([]Command, 0, len(commands)),
		fallback:      o.fallback,
		fqdn:          o.fqdn,
		resourcesPath: o.resourcesPath,
	}
	for _, c := range commands {
		t.commands = append(t.commands, c.clone())
	}

	return t
}

// NewDefaultCommandTable builds the table from the compiled-in registry.
func NewDefaultCommandTable(fqdn string, resourcesPath string) *CommandTable {
	return NewCommandTable(DefaultCommands(),
		WithFallback(DefaultFallback()),
		WithFQDN(fqdn),
		WithResourcesPath(resourcesPath),
	)
}

// Commands returns a copy of the commands in table order.
func (t *CommandTable) Commands() []Command {
	commands := make([]Command, 0, len(t.commands))
	for _, c := range t.commands {
		commands = append(commands, c.clone())
	}

	return commands
}

func (t *CommandTable) Fallback() mo.Option[Command] {
	return t.fallback
}

func (t *CommandTable) FQDN() string {
	return t.fqdn
}

func (t *CommandTable) ResourcesPath() string {
	return t.resourcesPath
}

// Match returns the first command, in table order and then matcher order,
// whose matcher either equals the query or is followed by a space at the start
// of the query. The remainder after that space is returned verbatim as Args.
func (t *CommandTable) Match(query string) mo.Option[Match] {
	for i := range t.commands {
		command := &t.commands[i]

		for _, matcher := range command.Matchers {
			if query == matcher {
				return mo.Some(Match{Command: command, Matcher: matcher, Args: ""})
			}

			matcherWithSpace := matcher + " "
			if strings.HasPrefix(query, matcherWithSpace) {
				return mo.Some(Match{Command: command, Matcher: matcher, Args: query[len(matcherWithSpace):]})
			}
		}
	}

	return mo.None[Match]()
}

// Completions returns every matcher that starts with prefix, in table order.
func (t *CommandTable) Completions(prefix string) []Completion {
	completions := make([]Completion, 0)

	for i := range t.commands {
		command := &t.commands[i]

		for _, matcher := range command.Matchers {
			if strings.HasPrefix(matcher, prefix) {
				completions = append(completions, Completion{Command: command, Matcher: matcher})
			}
		}
	}

	return completions
}

// Dispatch resolves a query to the URL to redirect to. A matched command gets
// the leftover arguments, while the fallback receives the entire query since no
// matcher consumed any of it. None means the caller should answer not-found.
func (t *CommandTable) Dispatch(query string) mo.Option[string] {
	if m, ok := t.Match(query).Get(); ok {
		return mo.Some(m.Command.Resolve(m.Args))
	}
	if fallback, ok := t.fallback.Get(); ok {
		return mo.Some(fallback.Resolve(query))
	}

	return mo.None[string]()
}

// CommandURL is the absolute URL that runs the given matcher on this service.
func (t *CommandTable) CommandURL(matcher string) string {
	return fmt.Sprintf("https://%s/cmd?q=%s", t.fqdn, matcher)
}
