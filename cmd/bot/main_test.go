package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"StockPulse/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"CONFIG_PATH", "DISCORD_WEBHOOK_URL", "DATA_PROVIDER", "BARS_BASE_URL", "BARS_API_KEY", "HTTPS_PROXY", "CRON_SCHEDULE", "DRY_RUN"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	// os.Chdir + Cleanup stands in for t.Chdir (Go 1.24+).
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func barsServer(t *testing.T, count int) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	var b strings.Builder
	b.WriteString("[")
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		p := 100 + float64(i)*0.5
		fmt.Fprintf(&b, `{"timestamp":%d,"open":%g,"high":%g,"low":%g,"close":%g,"volume":1000}`,
			start.AddDate(0, 0, i).Unix(), p, p+1, p-1, p)
	}
	b.WriteString("]")
	body := b.String()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func webhookServer(t *testing.T, status int) (*httptest.Server, *[][]byte) {
	t.Helper()
	var bodies [][]byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, data)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	return cmd.Execute()
}

func TestRun_MissingWebhookStopsBeforeFetch(t *testing.T) {
	dir := isolate(t)
	bars, hits := barsServer(t, 60)
	path := writeConfig(t, dir, fmt.Sprintf("data_source:\n  provider: rest\n  base_url: %s\nreport:\n  logos: false\n", bars.URL))

	err := execute("run", "--config", path)
	assert.ErrorIs(t, err, config.ErrWebhookMissing)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestRun_PostsOneReport(t *testing.T) {
	dir := isolate(t)
	bars, hits := barsServer(t, 60)
	hook, bodies := webhookServer(t, http.StatusNoContent)
	path := writeConfig(t, dir, fmt.Sprintf(
		"discord:\n  webhook_url: %s\ndata_source:\n  provider: rest\n  base_url: %s\nreport:\n  logos: false\n", hook.URL, bars.URL))

	require.NoError(t, execute("run", "--config", path))
	assert.EqualValues(t, len(config.DefaultSymbols), atomic.LoadInt32(hits))
	require.Len(t, *bodies, 1)

	msg := (*bodies)[0]
	assert.Equal(t, "Stock Assistant", gjson.GetBytes(msg, "username").String())
	assert.EqualValues(t, len(config.DefaultSymbols), gjson.GetBytes(msg, "embeds.#").Int())
	assert.Contains(t, gjson.GetBytes(msg, "embeds.0.title").String(), "AAPL")
}

func TestRun_DeliveryFailureIsNotFatal(t *testing.T) {
	dir := isolate(t)
	bars, _ := barsServer(t, 60)
	hook, bodies := webhookServer(t, http.StatusInternalServerError)
	path := writeConfig(t, dir, fmt.Sprintf(
		"discord:\n  webhook_url: %s\ndata_source:\n  provider: rest\n  base_url: %s\nreport:\n  logos: false\n", hook.URL, bars.URL))

	assert.NoError(t, execute("run", "--config", path))
	assert.Len(t, *bodies, 1, "no retry")
}

func TestRun_ShortHistorySendsNothing(t *testing.T) {
	dir := isolate(t)
	bars, _ := barsServer(t, 10)
	hook, bodies := webhookServer(t, http.StatusNoContent)
	path := writeConfig(t, dir, fmt.Sprintf(
		"discord:\n  webhook_url: %s\ndata_source:\n  provider: rest\n  base_url: %s\nreport:\n  logos: false\n", hook.URL, bars.URL))

	assert.NoError(t, execute("run", "--config", path))
	assert.Empty(t, *bodies)
}

func TestRun_DryRunNeedsNoWebhook(t *testing.T) {
	dir := isolate(t)
	bars, hits := barsServer(t, 60)
	path := writeConfig(t, dir, fmt.Sprintf("data_source:\n  provider: rest\n  base_url: %s\nreport:\n  logos: false\n", bars.URL))

	assert.NoError(t, execute("--dry-run", "--config", path))
	assert.EqualValues(t, len(config.DefaultSymbols), atomic.LoadInt32(hits))
}

func TestRun_BadTimezone(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "dry_run: true\nschedule:\n  timezone: Mars/Olympus\n")
	assert.Error(t, execute("run", "--config", path))
}

func TestVersion(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}
