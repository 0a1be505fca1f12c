package config

import (
	"os"
	"testing"

	"github.com/eriklarko/propositions/src/helpers"
	"github.com/eriklarko/propositions/src/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSubstitutionMap(t *testing.T) {
	path := helpers.CreateTempFile(t, "test_substitutions.csv").Name()

	substitutions := map[string]*syntax.Formula{
		"|":  syntax.MustParse("~(~p&~q)"),
		"->": syntax.MustParse("(~p|q)"),
		"T":  syntax.MustParse("~F"),
	}

	err := WriteSubstitutionMap(path, substitutions)
	require.NoError(t, err)

	// Verify file content, sorted by key
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "->,(~p|q)\nT,~F\n|,~(~p&~q)\n", string(content))
}

func TestReadSubstitutionMap(t *testing.T) {

	t.Run("valid content", func(t *testing.T) {
		content := `# operators
&,~(~p|~q)
->, (~p|q)
p,(q&r)
`
		path := helpers.CreateTempFileWithContents(t, content)

		substitutions, err := ReadSubstitutionMap(path, syntax.Standard)
		require.NoError(t, err)

		require.Len(t, substitutions, 3)
		assert.Equal(t, "~(~p|~q)", substitutions["&"].String())
		assert.Equal(t, "(~p|q)", substitutions["->"].String())
		assert.Equal(t, "(q&r)", substitutions["p"].String())
	})

	t.Run("round trip", func(t *testing.T) {
		path := helpers.CreateTempFile(t, "round_trip.csv").Name()
		written := map[string]*syntax.Formula{
			"<->": syntax.Extended.MustParse("((p->q)&(q->p))"),
			"+":   syntax.Extended.MustParse("((p|q)&~(p&q))"),
		}
		require.NoError(t, WriteSubstitutionMap(path, written))

		read, err := ReadSubstitutionMap(path, syntax.Extended)
		require.NoError(t, err)

		require.Len(t, read, len(written))
		for key, f := range written {
			assert.True(t, f.Equal(read[key]), key)
		}
	})

	t.Run("invalid content", func(t *testing.T) {
		testCases := map[string]string{
			"invalid formula":  "&,p&q\n",
			"missing formula":  "&\n",
			"too many fields":  "&,(p|q),x\n",
			"duplicate key":    "&,(p|q)\n&,(q|p)\n",
			"extended formula": "&,(p+q)\n",
		}

		for name, content := range testCases {
			t.Run(name, func(t *testing.T) {
				path := helpers.CreateTempFileWithContents(t, content)

				_, err := ReadSubstitutionMap(path, syntax.Standard)
				assert.Error(t, err)
			})
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSubstitutionMap("does-not-exist.csv", syntax.Standard)
		assert.Error(t, err)
	})
}
