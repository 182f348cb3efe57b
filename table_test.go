package turbobunny

import (
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTableMatch(t *testing.T) {
	table := NewDefaultCommandTable("bunny.example.com", "")

	t.Run("EveryMatcherMatchesExactly", func(t *testing.T) {
		commands := table.Commands()

		for i, command := range commands {
			for _, matcher := range command.Matchers {
				m, ok := table.Match(matcher).Get()
				require.True(t, ok, matcher)

				assert.Equal(t, "", m.Args)
				assert.Equal(t, matcher, m.Matcher)
				assert.Same(t, &table.commands[i], m.Command)
			}
		}
	})

	t.Run("MatcherWithArgs", func(t *testing.T) {
		for _, command := range table.Commands() {
			for _, matcher := range command.Matchers {
				m, ok := table.Match(matcher + " red rex  rabbits ").Get()
				require.True(t, ok, matcher)

				assert.Equal(t, "red rex  rabbits ", m.Args)
				assert.Equal(t, command.Matchers, m.Command.Matchers)
			}
		}
	})

	t.Run("TrailingSpaceOnly", func(t *testing.T) {
		m, ok := table.Match("gh ").Get()
		require.True(t, ok)

		assert.Equal(t, "", m.Args)
		assert.Equal(t, []string{"gh"}, m.Command.Matchers)
	})

	t.Run("PrefixWithoutSpaceDoesNotMatch", func(t *testing.T) {
		assert.True(t, table.Match("github").IsAbsent())
		assert.True(t, table.Match("bkx").IsAbsent())
	})

	t.Run("LongerMatcherStillMatches", func(t *testing.T) {
		m, ok := table.Match("ghi 192").Get()
		require.True(t, ok)

		assert.Equal(t, "ghi", m.Matcher)
		assert.Equal(t, "192", m.Args)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.True(t, table.Match("").IsAbsent())
		assert.True(t, table.Match("zzz unknown").IsAbsent())
		assert.True(t, table.Match(" g leading space").IsAbsent())
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		assert.True(t, table.Match("G red").IsAbsent())
	})
}

func TestCommandTableMatchPrecedence(t *testing.T) {
	first := Command{Matchers: []string{"x", "dup"}, Destination: RedirectNoArgs{URL: "/first"}}
	second := Command{Matchers: []string{"dup"}, Destination: RedirectNoArgs{URL: "/second"}}

	table := NewCommandTable([]Command{first, second})

	m, ok := table.Match("dup").Get()
	require.True(t, ok)
	assert.Equal(t, "/first", m.Command.Resolve(m.Args))

	m, ok = table.Match("dup with args").Get()
	require.True(t, ok)
	assert.Equal(t, "/first", m.Command.Resolve(m.Args))
	assert.Equal(t, "with args", m.Args)
}

func TestCommandTableCompletions(t *testing.T) {
	table := NewDefaultCommandTable("bunny.example.com", "")

	t.Run("EmptyPrefix", func(t *testing.T) {
		completions := table.Completions("")

		matchers := lo.Map(completions, func(c Completion, _ int) string { return c.Matcher })
		assert.Equal(t, []string{"g", "google", "bunny", "gh", "ghi", "pr", "prs", "bk"}, matchers)
	})

	t.Run("Prefix", func(t *testing.T) {
		completions := table.Completions("g")

		matchers := lo.Map(completions, func(c Completion, _ int) string { return c.Matcher })
		assert.Equal(t, []string{"g", "google", "gh", "ghi"}, matchers)

		for _, c := range completions {
			assert.Contains(t, c.Command.Matchers, c.Matcher)
		}
	})

	t.Run("LongerPrefix", func(t *testing.T) {
		matchers := lo.Map(table.Completions("pr"), func(c Completion, _ int) string { return c.Matcher })
		assert.Equal(t, []string{"pr", "prs"}, matchers)
	})

	t.Run("NoCompletions", func(t *testing.T) {
		completions := table.Completions("zzz")
		require.NotNil(t, completions)
		assert.Empty(t, completions)
	})

	t.Run("QueryWithArgsDoesNotComplete", func(t *testing.T) {
		assert.Empty(t, table.Completions("g red"))
	})
}

func TestCommandTableDispatch(t *testing.T) {
	t.Run("Matched", func(t *testing.T) {
		table := NewDefaultCommandTable("bunny.example.com", "")

		url, ok := table.Dispatch("g red rex rabbits").Get()
		require.True(t, ok)
		assert.Equal(t, "https://www.google.com/search?q=red rex rabbits", url)

		url, ok = table.Dispatch("pr 192").Get()
		require.True(t, ok)
		assert.Equal(t, "https://www.github.com/ludumipsum/repo/pull/192", url)

		url, ok = table.Dispatch("prs").Get()
		require.True(t, ok)
		assert.Equal(t, "https://www.github.com/ludumipsum/repo/pulls", url)

		url, ok = table.Dispatch("bunny ignored args").Get()
		require.True(t, ok)
		assert.Equal(t, "/index", url)
	})

	t.Run("FallbackReceivesWholeQuery", func(t *testing.T) {
		fallback := Command{
			Matchers:    []string{"f"},
			Destination: RedirectArgsString{URL: "F", URLWithArgs: "F?q="},
		}
		table := NewCommandTable([]Command{
			{Matchers: []string{"a"}, Destination: RedirectNoArgs{URL: "/a"}},
		}, WithFallback(fallback))

		url, ok := table.Dispatch("zzz unknown").Get()
		require.True(t, ok)
		assert.Equal(t, fallback.Resolve("zzz unknown"), url)
		assert.Equal(t, "F?q=zzz unknown", url)

		url, ok = table.Dispatch("").Get()
		require.True(t, ok)
		assert.Equal(t, "F", url)
	})

	t.Run("FallbackMatchersAreNotConsulted", func(t *testing.T) {
		table := NewCommandTable([]Command{}, WithFallback(Command{
			Matchers:    []string{"f"},
			Destination: RedirectArgsString{URL: "F", URLWithArgs: "F?q="},
		}))

		url, ok := table.Dispatch("f bar").Get()
		require.True(t, ok)
		assert.Equal(t, "F?q=f bar", url)
	})

	t.Run("NoMatchNoFallback", func(t *testing.T) {
		table := NewCommandTable([]Command{
			{Matchers: []string{"a"}, Destination: RedirectNoArgs{URL: "/a"}},
		})

		assert.True(t, table.Dispatch("zzz unknown").IsAbsent())
		assert.True(t, table.Dispatch("").IsAbsent())
	})

	t.Run("Concurrent", func(t *testing.T) {
		table := NewDefaultCommandTable("bunny.example.com", "")

		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				assert.Equal(t, "https://buildkite.com/ludumipsum/global-ci", table.Dispatch("bk global-ci").MustGet())
				assert.Len(t, table.Completions(""), 8)
			}()
		}

		wg.Wait()
	})
}

func TestCommandTableImmutable(t *testing.T) {
	commands := []Command{
		{Matchers: []string{"a"}, Destination: RedirectNoArgs{URL: "/a"}},
	}
	table := NewCommandTable(commands)

	commands[0].Matchers[0] = "b"

	listed := table.Commands()
	listed[0].Matchers[0] = "c"

	assert.True(t, table.Match("a").IsPresent())
	assert.True(t, table.Match("b").IsAbsent())
	assert.True(t, table.Match("c").IsAbsent())
}

func TestCommandTableAccessors(t *testing.T) {
	table := NewDefaultCommandTable("bunny.example.com", "./resources")

	assert.Equal(t, "bunny.example.com", table.FQDN())
	assert.Equal(t, "./resources", table.ResourcesPath())
	assert.Equal(t, "https://bunny.example.com/cmd?q=gh", table.CommandURL("gh"))

	fallback, ok := table.Fallback().Get()
	require.True(t, ok)
	assert.Equal(t, []string{"g", "google"}, fallback.Matchers)

	assert.True(t, NewCommandTable(nil).Fallback().IsAbsent())
	assert.Equal(t, "0.0.0.0", NewCommandTable(nil).FQDN())
}
