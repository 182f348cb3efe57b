package turbobunny

import "fmt"

const (
	GoogleSearchURL = "https://www.google.com/search"
	BuildkiteBase   = "https://buildkite.com/ludumipsum"
	GitHubBase      = "https://www.github.com/ludumipsum"
	GitHubMainRepo  = "repo"
)

func googleCommand() Command {
	return Command{
		Matchers:    []string{"g", "google"},
		Description: "search google with your arguments",
		Example:     "g red rex rabbits",
		Destination: RedirectArgsString{
			URL:         GoogleSearchURL,
			URLWithArgs: GoogleSearchURL + "?q=",
		},
	}
}

// DefaultFallback is the command used when nothing in DefaultCommands matches.
func DefaultFallback() Command {
	return googleCommand()
}

// DefaultCommands returns the compiled-in command registry. Earlier entries
// take priority over later ones sharing a matcher.
func DefaultCommands() []Command {
	return []Command{
		googleCommand(),
		{
			Matchers:    []string{"bunny"},
			Description: "open turbobunny's homepage",
			Example:     "bunny",
			Destination: RedirectNoArgs{URL: "/index"},
		},
		{
			Matchers:    []string{"gh"},
			Description: "open the corresponding LI git repo",
			Example:     "gh repo",
			Destination: RedirectArgsString{
				URL:         GitHubBase,
				URLWithArgs: GitHubBase + "/",
			},
		},
		{
			Matchers:    []string{"ghi"},
			Description: "open the given github issue in ludumipsum/repo",
			Example:     "ghi 192",
			Destination: RedirectArgsString{
				URL:         fmt.Sprintf("%s/%s/%s/", GitHubBase, GitHubMainRepo, "issues"),
				URLWithArgs: fmt.Sprintf("%s/%s/%s/", GitHubBase, GitHubMainRepo, "issues"),
			},
		},
		{
			Matchers:    []string{"pr", "prs"},
			Description: "open the given pr in ludumipsum/repo",
			Example:     "pr 192",
			Destination: RedirectArgsString{
				URL:         fmt.Sprintf("%s/%s/%s", GitHubBase, GitHubMainRepo, "pulls"),
				URLWithArgs: fmt.Sprintf("%s/%s/%s/", GitHubBase, GitHubMainRepo, "pull"),
			},
		},
		{
			Matchers:    []string{"bk"},
			Description: "open our buildkite dashboard",
			Example:     "bk global-ci",
			Destination: RedirectArgsString{
				URL:         BuildkiteBase,
				URLWithArgs: BuildkiteBase + "/",
			},
		},
	}
}
