package syntax_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/eriklarko/propositions/src/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFormula(t *testing.T) {
	testCases := map[string]bool{
		"(p&q)":              true,
		"p":                  true,
		"x12":                true,
		"T":                  true,
		"~~p":                true,
		"(T|F)":              true,
		"(p->q)":             true,
		"~(p|q)":             true,
		"(~p|~~q12)":         true,
		"((p1->T)|~(q&p1))":  true,
		"(((p&q)&r)->~~x12)": true,

		"":        false,
		"p&q":     false, // missing parentheses
		"((p&q)":  false, // unclosed
		"(p&q":    false,
		"(p&q))":  false,
		"(p)":     false,
		"(p-q)":   false,
		"(p+q)":   false, // extended only
		"(p<->q)": false, // extended only
		"TF":      false,
		"p1a":     false,
		"a":       false,
		"~":       false,
		"()":      false,
		"(p&q&r)": false,
		" p":      false,
		"(p & q)": false,
	}

	for text, expected := range testCases {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, expected, syntax.IsFormula(text))
		})
	}
}

func TestIsFormula_Extended(t *testing.T) {
	testCases := map[string]bool{
		"(p+q)":             true,
		"(p<->q)":           true,
		"(p-&q)":            true,
		"(p-|q)":            true,
		"((p<->q)-|~(r+s))": true,
		"(p&q)":             true,
		"(p<-q)":            false,
		"(p-q)":             false,
	}

	for text, expected := range testCases {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, expected, syntax.Extended.IsFormula(text))
		})
	}
}

func TestParsePrefix(t *testing.T) {
	testCases := map[string]struct {
		formula string
		rest    string
	}{
		"q7&p":    {formula: "q7", rest: "&p"},
		"p":       {formula: "p", rest: ""},
		"x12y":    {formula: "x12", rest: "y"},
		"~x12y":   {formula: "~x12", rest: "y"},
		"TF":      {formula: "T", rest: "F"},
		"(p&q)x":  {formula: "(p&q)", rest: "x"},
		"~~T)))":  {formula: "~~T", rest: ")))"},
		"(p->q)|": {formula: "(p->q)", rest: "|"},
	}

	for text, expected := range testCases {
		t.Run(text, func(t *testing.T) {
			f, rest, err := syntax.ParsePrefix(text)
			require.NoError(t, err)

			assert.Equal(t, expected.formula, f.String())
			assert.Equal(t, expected.rest, rest)
		})
	}
}

func TestParsePrefix_Diagnostics(t *testing.T) {
	testCases := map[string]struct {
		diagnostic string
		offset     int
	}{
		"":       {diagnostic: "end of input", offset: 0},
		"~":      {diagnostic: "end of input", offset: 1},
		"(p&":    {diagnostic: "end of input", offset: 3},
		"(p":     {diagnostic: "missing operator", offset: 2},
		"((p&q)": {diagnostic: "missing operator", offset: 6},
		"(p-q)":  {diagnostic: "invalid operator", offset: 2},
		"(p+q)":  {diagnostic: "invalid operator", offset: 2},
		"(pq)":   {diagnostic: "invalid operator", offset: 2},
		"(p&q":   {diagnostic: "unclosed parenthesis", offset: 4},
		"(p&qr":  {diagnostic: "unclosed parenthesis", offset: 4},
		"A":      {diagnostic: "invalid prefix", offset: 0},
		")":      {diagnostic: "invalid prefix", offset: 0},
		"(p&A)":  {diagnostic: "invalid prefix", offset: 3},
		"~~(~B)": {diagnostic: "invalid prefix", offset: 4},
	}

	for text, expected := range testCases {
		t.Run(text, func(t *testing.T) {
			f, rest, err := syntax.ParsePrefix(text)
			assert.Nil(t, f)
			assert.Empty(t, rest)

			var parseErr *syntax.ParseError
			require.True(t, errors.As(err, &parseErr), "expected a ParseError, got %v", err)
			assert.Equal(t, expected.diagnostic, parseErr.Diagnostic)
			assert.Equal(t, expected.offset, parseErr.Offset)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("negated disjunction", func(t *testing.T) {
		f, err := syntax.Parse("~(p|q)")
		require.NoError(t, err)

		expected := syntax.MustNew("~", syntax.MustNew("|", syntax.MustNew("p"), syntax.MustNew("q")))
		assert.True(t, expected.Equal(f))
		assert.Equal(t, syntax.Unary, f.Kind())
		assert.Equal(t, syntax.Binary, f.First().Kind())
		assert.Equal(t, "~(p|q)", f.String())
	})

	t.Run("round trips", func(t *testing.T) {
		for _, text := range []string{
			"p", "T", "~F", "(p&q)", "~(p|q)", "((p1->T)|~(q&p1))", "~~~(x->(y->(z->w)))",
		} {
			assert.Equal(t, text, syntax.MustParse(text).String())
		}
	})

	t.Run("trailing input", func(t *testing.T) {
		f, err := syntax.Parse("(p&q)x")
		assert.Nil(t, f)

		var parseErr *syntax.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "unexpected trailing input", parseErr.Diagnostic)
		assert.Equal(t, 5, parseErr.Offset)
	})

	t.Run("fails exactly when IsFormula is false", func(t *testing.T) {
		for _, text := range []string{"", "p&q", "((p&q)", "(p+q)", "p1a", "(p&q))"} {
			_, err := syntax.Parse(text)
			assert.Error(t, err, text)
			assert.False(t, syntax.IsFormula(text), text)
		}
	})

	t.Run("MustParse panics", func(t *testing.T) {
		assert.Panics(t, func() {
			syntax.MustParse("p&q")
		})
	})

	t.Run("deep nesting", func(t *testing.T) {
		text := strings.Repeat("~", 1000) + strings.Repeat("(", 500) + "p" + strings.Repeat("&q)", 500)
		f, err := syntax.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, text, f.String())
		assert.Equal(t, 1500, f.Depth())
	})
}

func TestParse_Extended(t *testing.T) {
	f, err := syntax.Extended.Parse("((p<->q)-|~(r+s))")
	require.NoError(t, err)

	assert.Equal(t, "-|", f.Root())
	assert.Equal(t, "<->", f.First().Root())
	assert.Equal(t, "+", f.Second().First().Root())
	assert.Same(t, syntax.Extended, f.Grammar())
	assert.ElementsMatch(t, []string{"-|", "<->", "~", "+"}, f.Operators())
}

func TestParse_CustomGrammar(t *testing.T) {
	g := syntax.MustNewGrammar("conjunctive", "&")

	assert.True(t, g.IsFormula("(p&~q)"))
	assert.False(t, g.IsFormula("(p|q)"))

	_, err := g.Parse("(p->q)")
	var parseErr *syntax.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "invalid operator", parseErr.Diagnostic)
}

func BenchmarkParse(b *testing.B) {
	text := "((((p1->T)|~(q&p1))&((x->y)|(z&~w)))->~((r|s)&(t->u12)))"
	for i := 0; i < b.N; i++ {
		if _, err := syntax.Parse(text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormula_String(b *testing.B) {
	text := "((((p1->T)|~(q&p1))&((x->y)|(z&~w)))->~((r|s)&(t->u12)))"
	for i := 0; i < b.N; i++ {
		// a fresh tree each time so the cache does not hide the work
		f := syntax.MustParse(text)
		_ = f.String()
	}
}
