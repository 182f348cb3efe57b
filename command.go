package turbobunny

// NotFoundURL is where a command without a configured destination redirects to.
const NotFoundURL = "/404"

// Destination describes how a matched command turns its arguments into a URL.
// The set of implementations is closed: NoDestination, RedirectNoArgs and
// RedirectArgsString.
type Destination interface {
	destination()
}

// NoDestination resolves to NotFoundURL.
type NoDestination struct{}

// RedirectNoArgs always resolves to URL, ignoring any arguments.
type RedirectNoArgs struct {
	URL string `json:"url"`
}

// RedirectArgsString resolves to URL when no arguments were supplied and to
// URLWithArgs followed by the raw argument string otherwise.
type RedirectArgsString struct {
	URL         string `json:"url"`
	URLWithArgs string `json:"url_with_args"`
}

func (NoDestination) destination()      {}
func (RedirectNoArgs) destination()     {}
func (RedirectArgsString) destination() {}

type Command struct {
	Matchers    []string    `json:"matchers"`
	Description string      `json:"description"`
	Example     string      `json:"example"`
	Destination Destination `json:"-"`
}

func NewCommand() Command {
	return Command{
		Matchers:    make([]string, 0),
		Description: "[missing_description]",
		Example:     "[missing_example]",
		Destination: NoDestination{},
	}
}

// Resolve returns the URL this command redirects to for the given trailing
// arguments. Arguments are appended verbatim, without escaping.
func (c Command) Resolve(args string) string {
	switch d := c.Destination.(type) {
	case RedirectNoArgs:
		return d.URL
	case RedirectArgsString:
		if args == "" {
			return d.URL
		}

		return d.URLWithArgs + args
	default:
		return NotFoundURL
	}
}

func (c Command) clone() Command {
	cloned := c
	cloned.Matchers = append(make([]string, 0, len(c.Matchers)), c.Matchers...)

	return cloned
}
