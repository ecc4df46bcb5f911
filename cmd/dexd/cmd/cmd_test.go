package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bholdus-chain/dex/api"
	"github.com/bholdus-chain/dex/app"
	apptesting "github.com/bholdus-chain/dex/testutil/app"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dexd "+app.Version)
	assert.Contains(t, out, "commit unknown")
}

func TestDefaultGenesisCmd(t *testing.T) {
	out, err := execute(t, "genesis", "default", "--chain-id", "dex-test")
	require.NoError(t, err)

	var doc app.GenesisDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "dex-test", doc.ChainID)
	require.NoError(t, doc.Validate())
}

func TestInitThenValidate(t *testing.T) {
	home := t.TempDir()
	authority := apptesting.Addr("authority").String()

	out, err := execute(t, "init", "--home", home, "--chain-id", "dex-1", "--authority", authority)
	require.NoError(t, err)
	require.Contains(t, out, "dex-1")
	require.FileExists(t, ConfigPath(home))
	require.FileExists(t, filepath.Join(home, "config", "genesis.json"))

	out, err = execute(t, "genesis", "validate", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "valid genesis file for chain dex-1")

	// A second init refuses to clobber the files.
	_, err = execute(t, "init", "--home", home, "--chain-id", "dex-2")
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--home", home, "--chain-id", "dex-2", "--overwrite")
	require.NoError(t, err)

	cmd := StartCmd()
	cmd.Flags().String(flagHome, home, "")
	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	require.Empty(t, cfg.App.Authorities)
	require.Equal(t, filepath.Join(home, "data"), cfg.App.DBDir)
}

func TestValidateGenesisCmdRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chain_id":"","app_state":{}}`), 0o600))

	_, err := execute(t, "genesis", "validate", path)
	require.ErrorContains(t, err, "chain_id is empty")

	_, err = execute(t, "genesis", "validate", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestConfigFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	want := DefaultConfig(home)
	want.App.Authorities = []string{apptesting.Addr("a").String(), apptesting.Addr("b").String()}
	want.API.CORSOrigins = []string{"https://app.example.com", "http://localhost:3000"}
	want.API.RateLimitRPS = 7
	want.API.RequestTimeout = 3 * time.Second
	want.API.JWTSecret = "s3cret"
	want.Telemetry.Enabled = true
	want.Telemetry.SampleRate = 0.5
	require.NoError(t, WriteConfigFile(ConfigPath(home), want))

	v, err := newViper(home, nil)
	require.NoError(t, err)
	require.Equal(t, want, configFromViper(v))
}

func TestConfigDefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	v, err := newViper(home, nil)
	require.NoError(t, err)

	cfg := configFromViper(v)
	def := DefaultConfig(home)
	require.Equal(t, def.App.DBBackend, cfg.App.DBBackend)
	require.Equal(t, def.API.Address, cfg.API.Address)
	require.Equal(t, def.MetricsAddress, cfg.MetricsAddress)
	require.NoError(t, cfg.Validate())
}

func TestConfigEnvAndFlagPrecedence(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, WriteConfigFile(ConfigPath(home), DefaultConfig(home)))

	a, b := apptesting.Addr("a").String(), apptesting.Addr("b").String()
	t.Setenv("DEXD_API_ADDRESS", "0.0.0.0:9000")
	t.Setenv("DEXD_DEX_AUTHORITIES", a+", "+b)
	t.Setenv("DEXD_LOG_LEVEL", "debug")

	cmd := StartCmd()
	cmd.Flags().String(flagHome, home, "")
	require.NoError(t, cmd.Flags().Set("log.level", "warn"))
	require.NoError(t, cmd.Flags().Set("db.backend", "memdb"))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.API.Address)
	require.Equal(t, []string{a, b}, cfg.App.Authorities)
	require.Equal(t, "warn", cfg.App.LogLevel)
	require.Equal(t, "memdb", cfg.App.DBBackend)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.API.Address = ""
	require.Error(t, bad.Validate())

	bad = cfg
	bad.API.RateLimitRPS = -1
	require.Error(t, bad.Validate())

	bad = cfg
	bad.App.DBBackend = "rocksdb"
	require.Error(t, bad.Validate())
}

func TestMetricsRouter(t *testing.T) {
	router := newMetricsRouter(log.NewNopLogger())

	for _, path := range []string{"/metrics", "/healthz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestOpenAppAppliesGenesisOnce(t *testing.T) {
	home := t.TempDir()
	alice := apptesting.Addr("alice")
	authority := apptesting.Addr("authority")

	gs := apptesting.NewGenesisBuilder().
		Fund(alice, "BHO", 5000).
		Fund(alice, "BNB", 5000).
		EnablePool(alice, "BHO", "BNB", 1000, 2000).
		Build(t)
	bz, err := app.GenesisDoc{ChainID: "dex-1", AppState: gs}.MarshalIndent()
	require.NoError(t, err)

	cfg := DefaultConfig(home)
	cfg.App.Authorities = []string{authority.String()}
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.App.GenesisFile), 0o755))
	require.NoError(t, os.WriteFile(cfg.App.GenesisFile, bz, 0o600))

	ctx := context.Background()
	dexApp, err := openApp(ctx, cfg, log.NewNopLogger())
	require.NoError(t, err)
	require.True(t, dexApp.Initialized())
	r0, r1, err := dexApp.DexKeeper.GetLiquidity(ctx, "BHO", "BNB")
	require.NoError(t, err)
	require.Equal(t, "1000", r0.String())
	require.Equal(t, "2000", r1.String())
	require.Equal(t, "4000", dexApp.LedgerKeeper.Balance(ctx, "BHO", alice).String())
	require.NoError(t, dexApp.Close())

	// The genesis file is ignored once the database holds state.
	require.NoError(t, os.WriteFile(cfg.App.GenesisFile, []byte("{}"), 0o600))
	dexApp, err = openApp(ctx, cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer dexApp.Close()
	r0, _, err = dexApp.DexKeeper.GetLiquidity(ctx, "BHO", "BNB")
	require.NoError(t, err)
	require.Equal(t, "1000", r0.String())
}

func TestOpenAppRejectsBadAuthority(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.App.DBBackend = "memdb"
	cfg.App.Authorities = []string{"nope"}
	_, err := openApp(context.Background(), cfg, log.NewNopLogger())
	require.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	home := t.TempDir()
	bob := apptesting.Addr("bob")

	_, err := execute(t, "token", bob.String(), "--home", home)
	require.ErrorContains(t, err, "jwt_secret is not set")

	cfg := DefaultConfig(home)
	cfg.API.JWTSecret = "s3cret"
	require.NoError(t, WriteConfigFile(ConfigPath(home), cfg))

	out, err := execute(t, "token", bob.String(), "--home", home, "--ttl", "1h")
	require.NoError(t, err)
	addr, err := api.NewAuthService([]byte("s3cret")).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	require.True(t, addr.Equals(bob))

	_, err = execute(t, "token", "not-an-address", "--home", home)
	require.Error(t, err)
}

func TestTelemetryConfig(t *testing.T) {
	cfg := DefaultTelemetryConfig()
	require.NoError(t, cfg.Validate())

	shutdown, err := initTracing(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	cfg.Enabled = true
	cfg.SampleRate = 1.5
	require.Error(t, cfg.Validate())

	cfg.SampleRate = 0.25
	cfg.OTLPEndpoint = ""
	require.Error(t, cfg.Validate())

	cfg.OTLPEndpoint = "http://127.0.0.1:4318"
	require.NoError(t, cfg.Validate())
	tp, err := newTracerProvider(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, tp.Shutdown(context.Background()))
}
