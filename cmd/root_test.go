package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jjview/internal/config"
	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/mocks"
)

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jjview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
revset: "trunk()..@"
layout: vertical
layout_percent: 30
log_cache_ttl: 5s
ui:
  highlight_color: "#445566"
`), 0o600))

	c, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	require.Equal(t, "trunk()..@", c.Revset)
	require.Equal(t, "vertical", c.Layout)
	require.Equal(t, 30, c.LayoutPercent)
	require.Equal(t, 5*time.Second, c.LogCacheTTL)
	require.Equal(t, "#445566", c.UI.HighlightColor)
	// Unset keys keep their defaults.
	require.Equal(t, "jj", c.JJBin)
	require.True(t, c.AutoRefresh)
	require.Equal(t, config.Defaults().AutoRefreshDebounce, c.AutoRefreshDebounce)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jjview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jj_bin: /usr/bin/jj\n"), 0o600))
	t.Setenv("JJVIEW_JJ_BIN", "/opt/jj")
	t.Setenv("JJVIEW_UI_MARKDOWN_STYLE", "light")

	c, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "/opt/jj", c.JJBin)
	require.Equal(t, "light", c.UI.MarkdownStyle)
}

func TestLoadConfig_PrefersLocalConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.MkdirAll(config.LocalConfigDir, 0o750))
	require.NoError(t, os.WriteFile(config.LocalConfigPath(), []byte("layout: vertical\n"), 0o600))

	v := viper.New()
	c, err := loadConfig(v, "")
	require.NoError(t, err)
	require.Equal(t, "vertical", c.Layout)
	require.Equal(t, config.LocalConfigPath(), v.ConfigFileUsed())
}

func TestLoadConfig_WritesUserDefaultOnFirstRun(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, config.Defaults().JJBin, c.JJBin)

	written := filepath.Join(home, ".config", "jjview", config.ConfigFileName)
	_, err = os.Stat(written)
	require.NoError(t, err)
}

func TestInspectWorkspace(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	exec.EXPECT().Root(mock.Anything).Return("/repo", nil).Once()
	exec.EXPECT().ConfigList(mock.Anything).Return("[jjview]\nlayout = \"vertical\"\n", nil).Once()

	root, jjCfg, err := inspectWorkspace(context.Background(), exec)
	require.NoError(t, err)
	require.Equal(t, "/repo", root)
	require.Equal(t, "vertical", jjCfg.Layout())
}

func TestInspectWorkspace_NotARepo(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	exec.EXPECT().Root(mock.Anything).Return("", jj.ErrNotJJRepo).Once()

	_, _, err := inspectWorkspace(context.Background(), exec)
	require.ErrorIs(t, err, jj.ErrNotJJRepo)
	require.Contains(t, err.Error(), "jj git init")
}

func TestInspectWorkspace_BadJJConfigIsNotFatal(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	exec.EXPECT().Root(mock.Anything).Return("/repo", nil).Once()
	exec.EXPECT().ConfigList(mock.Anything).Return("", errors.New("config error")).Once()

	root, jjCfg, err := inspectWorkspace(context.Background(), exec)
	require.NoError(t, err)
	require.Equal(t, "/repo", root)
	require.Equal(t, jj.DefaultLayout, jjCfg.Layout())
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	t.Cleanup(func() {
		configInitCmd.SetOut(nil)
		configInitForce = false
	})

	require.NoError(t, configInitCmd.RunE(configInitCmd, []string{path}))
	require.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "jj_bin")

	// A second run refuses to clobber the file unless forced.
	require.Error(t, configInitCmd.RunE(configInitCmd, []string{path}))
	configInitForce = true
	require.NoError(t, configInitCmd.RunE(configInitCmd, []string{path}))
}
