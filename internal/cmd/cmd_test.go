package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/alexander-akhmetov/stageplay/internal/config"
	"github.com/alexander-akhmetov/stageplay/internal/stage"
)

const messyCatalog = `name: Test
stages:
  - title: Input
    payload: hello
  - title: Parse
    format: json
    payload: '{"intent":{"action":"deploy","amount":5}}'
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("STAGEPLAY_CONFIG_DIR", t.TempDir())
	for _, k := range []string{"STAGEPLAY_INTERVAL", "STAGEPLAY_RESTART_POLICY", "STAGEPLAY_CATALOG", "STAGEPLAY_HIDE_STATS", "STAGEPLAY_AUTOPLAY"} {
		t.Setenv(k, "")
	}
}

func TestFormatCatalog(t *testing.T) {
	formatted, err := formatCatalog([]byte(messyCatalog))
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "\"action\": \"deploy\"")

	again, err := formatCatalog(formatted)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(again), "formatting is idempotent")

	_, err = formatCatalog([]byte("stages: []\n"))
	require.ErrorIs(t, err, stage.ErrEmptyCatalog)
}

func TestQueryStage(t *testing.T) {
	cat, err := stage.Parse([]byte(messyCatalog))
	require.NoError(t, err)

	tests := []struct {
		name    string
		number  int
		path    string
		want    string
		wantErr error
	}{
		{name: "nested value", number: 2, path: "intent.action", want: "deploy\n"},
		{name: "number", number: 2, path: "intent.amount", want: "5\n"},
		{name: "missing path", number: 2, path: "intent.nope", wantErr: stage.ErrNoMatch},
		{name: "out of range", number: 3, path: "x", wantErr: stage.ErrOutOfRange},
		{name: "text stage", number: 1, path: "x", wantErr: stage.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := queryStage(&buf, cat, tt.number, tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("flags must be paired", func(t *testing.T) {
		require.Error(t, queryStage(&bytes.Buffer{}, cat, 0, "x"))
		require.Error(t, queryStage(&bytes.Buffer{}, cat, 1, ""))
	})
}

func TestQueryDemoStage(t *testing.T) {
	cat, err := stage.Demo()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, queryStage(&buf, cat, 2, "token"))
	assert.Equal(t, "USDC\n", buf.String())
}

func TestStageTable(t *testing.T) {
	cat, err := stage.Demo()
	require.NoError(t, err)

	out := stageTable(cat)
	for _, s := range cat.Stages() {
		assert.Contains(t, out, s.Title)
	}
	for _, st := range cat.Stats() {
		assert.Contains(t, out, st.Value)
	}
}

func TestLoadCatalog(t *testing.T) {
	demo, err := loadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 4, demo.Size())

	cat, err := loadCatalog(writeCatalog(t, messyCatalog))
	require.NoError(t, err)
	assert.Equal(t, "Test", cat.Name())
}

func TestCatalogPath(t *testing.T) {
	isolateConfig(t)

	path, err := catalogPath([]string{"x.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "x.yaml", path)

	t.Setenv("STAGEPLAY_CATALOG", "/tmp/env.yaml")
	path, err = catalogPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.yaml", path)
}

func TestOverridesFromFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "play"}
		c.Flags().DurationVar(&interval, "interval", 0, "")
		c.Flags().StringVar(&restartPolicy, "restart-policy", "", "")
		c.Flags().BoolVar(&autoplay, "autoplay", false, "")
		c.Flags().BoolVar(&hideStats, "hide-stats", false, "")
		return c
	}

	t.Run("nothing set", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.ParseFlags(nil))
		assert.Equal(t, config.Overrides{}, overridesFromFlags(c, nil))
	})

	t.Run("explicit values", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.ParseFlags([]string{"--interval", "500ms", "--restart-policy", "restart", "--hide-stats=false"}))
		o := overridesFromFlags(c, []string{"demo.yaml"})
		assert.Equal(t, 500*time.Millisecond, o.Interval)
		assert.Equal(t, "restart", o.RestartPolicy)
		assert.Equal(t, "demo.yaml", o.Catalog)
		require.NotNil(t, o.HideStats)
		assert.False(t, *o.HideStats)
		assert.Nil(t, o.Autoplay)
	})
}

func TestPrintConfig(t *testing.T) {
	isolateConfig(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	printConfig(&buf, cfg)
	out := buf.String()
	assert.Contains(t, out, "# Stageplay Configuration")
	assert.Contains(t, out, "interval:       2s")
	assert.Contains(t, out, "restart_policy: ignore")
	assert.Contains(t, out, "(built-in demo)")
}

func TestCatalogCommands(t *testing.T) {
	isolateConfig(t)
	path := writeCatalog(t, messyCatalog)

	run := func(args ...string) string {
		t.Helper()
		showStage, showQuery, fmtDiff, fmtWrite = 0, "", false, false
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(args)
		defer func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
		}()
		require.NoError(t, rootCmd.Execute())
		return buf.String()
	}

	t.Run("export", func(t *testing.T) {
		out := run("catalog", "export", path)
		require.True(t, gjson.Valid(out))
		assert.Equal(t, "deploy", gjson.Get(out, "stages.1.payload.intent.action").String())
	})

	t.Run("fmt diff", func(t *testing.T) {
		out := run("catalog", "fmt", "-d", path)
		assert.Contains(t, out, "--- "+path)
		assert.Contains(t, out, "+++ "+path+" (formatted)")
	})

	t.Run("fmt write", func(t *testing.T) {
		out := run("catalog", "fmt", "-w", path)
		assert.Contains(t, out, "formatted "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		formatted, err := formatCatalog([]byte(messyCatalog))
		require.NoError(t, err)
		assert.Equal(t, string(formatted), string(data))
	})
}
