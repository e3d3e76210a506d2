package cmd

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pricerank/internal/catalog"
)

const exampleCatalog = `[
  {"name":"Sol Ring","type_line":"Artifact","edhrec_rank":1,"prices":{"usd":"2.00"}},
  {"name":"Obscure Card","type_line":"Creature","edhrec_rank":9999,"prices":{"usd":null}}
]`

const largerCatalog = `[
  {"name":"Cultivate","type_line":"Sorcery","edhrec_rank":12,"prices":{"usd":"0.50"}},
  {"name":"Sol Ring","type_line":"Artifact","edhrec_rank":1,"prices":{"usd":"2.00"}},
  {"name":"Storm Crow","type_line":"Creature — Bird","prices":{"usd":"0.10"}},
  {"name":"Llanowar Elves","type_line":"Creature — Elf Druid","edhrec_rank":40,"prices":{"usd":"0.25"}},
  {"name":"Elvish Mystic","type_line":"Creature — Elf Druid","edhrec_rank":40,"prices":{"usd":"0.30"}},
  {"name":"Mana Crypt","type_line":"Artifact","edhrec_rank":3,"prices":{"usd":"180.00"}}
]`

// run executes the command tree with isolated XDG directories and
// returns what was written to stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	verbose, configPath = false, ""

	if args == nil {
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), err
}

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oracle-cards.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestPriceRankCSV(t *testing.T) {
	t.Run("example", func(t *testing.T) {
		out, err := run(t, "price_rank_csv", writeCatalog(t, exampleCatalog))
		require.NoError(t, err)
		assert.Equal(t, "2, 1\n", out)
	})

	t.Run("keeps file order", func(t *testing.T) {
		out, err := run(t, "price_rank_csv", writeCatalog(t, largerCatalog))
		require.NoError(t, err)
		assert.Equal(t, "0.5, 12\n2, 1\n0.25, 40\n0.3, 40\n180, 3\n", out)
	})

	t.Run("idempotent", func(t *testing.T) {
		path := writeCatalog(t, largerCatalog)
		first, err := run(t, "price_rank_csv", path)
		require.NoError(t, err)
		second, err := run(t, "price_rank_csv", path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestTopCardsUnderPrice(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		args    []string
		want    string
	}{
		{"example", exampleCatalog, []string{"5", "10.0"}, "1 Sol Ring\n"},
		{"example with creature filter", exampleCatalog, []string{"5", "10.0", "Creature"}, ""},
		{"sorted by rank", largerCatalog, []string{"10", "5"}, "1 Sol Ring\n1 Cultivate\n1 Llanowar Elves\n1 Elvish Mystic\n"},
		{"truncated", largerCatalog, []string{"2", "1000"}, "1 Sol Ring\n1 Mana Crypt\n"},
		{"zero cards", largerCatalog, []string{"0", "1000"}, ""},
		{"type filter", largerCatalog, []string{"3", "1", "Elf"}, "1 Llanowar Elves\n1 Elvish Mystic\n"},
		{"inclusive price", largerCatalog, []string{"5", "0.30", "Creature"}, "1 Llanowar Elves\n1 Elvish Mystic\n"},
		{"negative max price", largerCatalog, []string{"5", "-1"}, ""},
		{"filter starting with dash", largerCatalog, []string{"5", "1000", "-Elf"}, ""},
		{"filter that looks like a flag", largerCatalog, []string{"5", "1000", "--verbose"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"top_cards_under_price", writeCatalog(t, tt.catalog)}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown mode", []string{"cheapest", "cards.json"}},
		{"dump without input", []string{"price_rank_csv"}},
		{"dump with extra argument", []string{"price_rank_csv", "a.json", "b.json"}},
		{"top cards missing price", []string{"top_cards_under_price", "cards.json", "10"}},
		{"top cards too many arguments", []string{"top_cards_under_price", "cards.json", "10", "1", "Elf", "extra"}},
		{"unknown flag", []string{"price_rank_csv", "--sideways", "cards.json"}},
		{"config without subcommand", []string{"config"}},
		{"unknown config subcommand", []string{"config", "reset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)

			var usageErr *UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Contains(t, out, "Usage:")
		})
	}
}

func TestNumericArgumentErrors(t *testing.T) {
	path := writeCatalog(t, exampleCatalog)

	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"word num_cards", []string{"ten", "10"}, "num_cards"},
		{"fractional num_cards", []string{"2.5", "10"}, "num_cards"},
		{"word max_price", []string{"5", "cheap"}, "max_price"},
		{"huge max_price exponent", []string{"5", "1e400000000"}, "max_price"},
		{"tiny max_price exponent", []string{"5", "1e-400000000"}, "max_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"top_cards_under_price", path}, tt.args...)
			out, err := run(t, args...)

			var numErr *catalog.NumericFormatError
			require.ErrorAs(t, err, &numErr)
			assert.Equal(t, tt.field, numErr.Field)
			assert.Empty(t, out)
		})
	}
}

func TestFatalErrorsProduceNoOutput(t *testing.T) {
	malformed := `[
  {"name":"Sol Ring","type_line":"Artifact","edhrec_rank":1,"prices":{"usd":"2.00"}},
  {"name":"Broken","edhrec_rank":2,"prices":{"usd":"1.00"}}
]`

	t.Run("malformed record", func(t *testing.T) {
		for _, mode := range [][]string{
			{"price_rank_csv"},
			{"top_cards_under_price", "", "5", "10"},
		} {
			args := append([]string{}, mode...)
			path := writeCatalog(t, malformed)
			if len(args) > 1 {
				args[1] = path
			} else {
				args = append(args, path)
			}

			out, err := run(t, args...)
			var malformedErr *catalog.MalformedRecordError
			require.ErrorAs(t, err, &malformedErr)
			assert.Equal(t, "type_line", malformedErr.Field)
			assert.Empty(t, out)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		out, err := run(t, "price_rank_csv", filepath.Join(t.TempDir(), "missing.json"))
		var ioErr *catalog.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Empty(t, out)
	})

	t.Run("not json", func(t *testing.T) {
		out, err := run(t, "price_rank_csv", writeCatalog(t, "Sol Ring,2.00,1"))
		var parseErr *catalog.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Empty(t, out)
	})

	t.Run("huge price exponent", func(t *testing.T) {
		path := writeCatalog(t, `[{"name":"Sol Ring","type_line":"Artifact","edhrec_rank":1,"prices":{"usd":"1e-50000000"}}]`)
		out, err := run(t, "top_cards_under_price", path, "5", "10")
		var numErr *catalog.NumericFormatError
		require.ErrorAs(t, err, &numErr)
		assert.ErrorIs(t, err, catalog.ErrDecimalOutOfRange)
		assert.Empty(t, out)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		out, err := run(t, "price_rank_csv", writeCatalog(t, "[{\"name\":\"\xff\"}]"))
		assert.ErrorIs(t, err, catalog.ErrInvalidUTF8)
		assert.Empty(t, out)
	})

	t.Run("not an array", func(t *testing.T) {
		out, err := run(t, "price_rank_csv", writeCatalog(t, `{"object":"list","data":[]}`))
		var structErr *catalog.StructureError
		require.ErrorAs(t, err, &structErr)
		assert.Empty(t, out)
	})
}

func TestCatalogLibraryLookup(t *testing.T) {
	dataHome := t.TempDir()
	libraryDir := filepath.Join(dataHome, "catalogs")
	require.NoError(t, os.MkdirAll(libraryDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(libraryDir, "oracle-cards-2024.json"), []byte(exampleCatalog), 0644))

	configFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`catalog_dir = "`+filepath.ToSlash(libraryDir)+`"`), 0644))

	out, err := run(t, "--config", configFile, "price_rank_csv", "oracle-cards-2024.json")
	require.NoError(t, err)
	assert.Equal(t, "2, 1\n", out)
}

func TestValidate(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		out, err := run(t, "validate", writeCatalog(t, largerCatalog))
		require.NoError(t, err)
		assert.Contains(t, out, "is valid: 5 cards from 6 records")
		assert.Contains(t, out, "1 without an EDHREC rank")
		assert.Contains(t, out, "0 without a current USD price")
	})

	t.Run("invalid catalog", func(t *testing.T) {
		out, err := run(t, "validate", writeCatalog(t, `[{"edhrec_rank":1}]`))
		var malformedErr *catalog.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
		assert.ErrorContains(t, err, "validation failed: ")
		assert.Equal(t, "name", malformedErr.Field)
		assert.Contains(t, out, "cannot be extracted")
		assert.Contains(t, out, `field "name"`)
	})
}

func TestConfigInit(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := run(t, "--config", configFile, "config", "init")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Config file initialized at: "+configFile))

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `log_level = "warn"`)
}

func TestVerboseFlag(t *testing.T) {
	_, err := run(t, "-v", "price_rank_csv", writeCatalog(t, exampleCatalog))
	require.NoError(t, err)
	assert.True(t, verbose)
}
