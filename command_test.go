package turbobunny

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandResolve(t *testing.T) {
	t.Run("NoDestination", func(t *testing.T) {
		assert.Equal(t, NotFoundURL, Command{Destination: NoDestination{}}.Resolve(""))
		assert.Equal(t, NotFoundURL, Command{Destination: NoDestination{}}.Resolve("args"))
		assert.Equal(t, NotFoundURL, Command{}.Resolve("args"))
	})

	t.Run("RedirectNoArgs", func(t *testing.T) {
		c := Command{Destination: RedirectNoArgs{URL: "/index"}}

		assert.Equal(t, "/index", c.Resolve(""))
		assert.Equal(t, "/index", c.Resolve("anything"))
	})

	t.Run("RedirectArgsString", func(t *testing.T) {
		c := Command{Destination: RedirectArgsString{URL: "U", URLWithArgs: "U?q="}}

		assert.Equal(t, "U", c.Resolve(""))
		assert.Equal(t, "U?q=red rex", c.Resolve("red rex"))
		assert.Equal(t, "U?q= a&b=c ", c.Resolve(" a&b=c "))
	})
}

func TestNewCommand(t *testing.T) {
	c := NewCommand()

	assert.Empty(t, c.Matchers)
	assert.Equal(t, "[missing_example]", c.Example)
	assert.Equal(t, "[missing_description]", c.Description)
	assert.Equal(t, NoDestination{}, c.Destination)
	assert.Equal(t, NotFoundURL, c.Resolve("x"))

	table := NewCommandTable([]Command{c})
	assert.True(t, table.Match("").IsAbsent())
	assert.Empty(t, table.Completions(""))
}
