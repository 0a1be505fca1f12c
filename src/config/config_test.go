package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eriklarko/propositions/src/helpers"
	"github.com/eriklarko/propositions/src/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {

	t.Run("valid, existing config", func(t *testing.T) {
		content := `grammar: extended
notation: polish
workers: 8
substitutions-dir: "maps"`
		configFile := helpers.CreateTempFileWithContents(t, content)

		config, err := LoadConfig(configFile)
		require.NoError(t, err)

		assert.Equal(t, "extended", config.Grammar)
		assert.Equal(t, "polish", config.Notation)
		assert.Equal(t, 8, config.Workers)
		assert.Equal(t, "maps", config.SubstitutionsDir)
		assert.Equal(t, configFile, config.Path)
	})

	t.Run("missing keys keep their defaults", func(t *testing.T) {
		configFile := helpers.CreateTempFileWithContents(t, `grammar: extended`)

		config, err := LoadConfig(configFile)
		require.NoError(t, err)

		assert.Equal(t, "extended", config.Grammar)
		assert.Equal(t, "infix", config.Notation)
		assert.Equal(t, 4, config.Workers)
	})

	t.Run("invalid, existing config", func(t *testing.T) {
		content := `foo` // no keys
		configFile := helpers.CreateTempFileWithContents(t, content)

		_, err := LoadConfig(configFile)
		assert.False(t, os.IsNotExist(err))
		assert.Error(t, err)
	})

	t.Run("values out of range", func(t *testing.T) {
		testCases := map[string]string{
			"unknown grammar":  `grammar: boolean`,
			"unknown notation": `notation: postfix`,
			"no workers":       `workers: 0`,
			"too many workers": `workers: 1000`,
		}

		for name, content := range testCases {
			t.Run(name, func(t *testing.T) {
				configFile := helpers.CreateTempFileWithContents(t, content)

				_, err := LoadConfig(configFile)
				assert.Error(t, err)
			})
		}
	})

	t.Run("non-existing config", func(t *testing.T) {
		_, err := LoadConfig("non-existing.yaml")
		assert.True(t, os.IsNotExist(err))
	})
}

func TestWriteConfig(t *testing.T) {
	configFile := helpers.CreateTempFile(t, "test_config.yaml").Name()

	config := &Config{
		Grammar:          "extended",
		Notation:         "infix",
		Workers:          2,
		SubstitutionsDir: "maps",

		Path: configFile,
	}

	err := config.Write()
	require.NoError(t, err)

	// Verify file content
	content, err := os.ReadFile(configFile)
	require.NoError(t, err)

	assert.Contains(t, string(content), "grammar: extended\n")
	assert.Contains(t, string(content), "notation: infix\n")
	assert.Contains(t, string(content), "workers: 2\n")
	assert.Contains(t, string(content), "substitutions-dir: maps\n")
	assert.NotContains(t, string(content), configFile)

	// verify permissions
	fileInfo, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), fileInfo.Mode())

	// and that it can be read back
	loaded, err := LoadConfig(configFile)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestWriteConfig_Invalid(t *testing.T) {
	config := Default()
	config.Workers = 0
	config.Path = filepath.Join(t.TempDir(), "config.yaml")

	err := config.Write()
	assert.Error(t, err)

	_, err = os.Stat(config.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_GrammarTable(t *testing.T) {
	config := Default()

	g, err := config.GrammarTable()
	require.NoError(t, err)
	assert.Same(t, syntax.Standard, g)

	config.Grammar = "extended"
	g, err = config.GrammarTable()
	require.NoError(t, err)
	assert.Same(t, syntax.Extended, g)

	config.Grammar = "boolean"
	_, err = config.GrammarTable()
	assert.Error(t, err)
}

func TestConfig_InputNotation(t *testing.T) {
	config := Default()

	n, err := config.InputNotation()
	require.NoError(t, err)
	assert.Equal(t, syntax.Infix, n)

	config.Notation = "polish"
	n, err = config.InputNotation()
	require.NoError(t, err)
	assert.Equal(t, syntax.Polish, n)
}

func TestConfig_SubstitutionPath(t *testing.T) {
	config := Default()
	assert.Equal(t, "and.csv", config.SubstitutionPath("and.csv"))

	config.SubstitutionsDir = "maps"
	assert.Equal(t, filepath.Join("maps", "and.csv"), config.SubstitutionPath("and.csv"))
	assert.Equal(t, "/tmp/and.csv", config.SubstitutionPath("/tmp/and.csv"))
}
