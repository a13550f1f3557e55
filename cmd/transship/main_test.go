package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), append([]string{"--log-level", "error"}, args...), &buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	return doc
}

func TestRun_Reference(t *testing.T) {
	doc := runJSON(t, "--config", filepath.Join("..", "..", "configs", "transship.yaml"))

	assert.Equal(t, "reference", doc["network"])
	report := doc["report"].(map[string]any)
	baseline := report["baseline"].(map[string]any)
	assert.Equal(t, "Optimal", baseline["status"])
	assert.InDelta(t, 15500, baseline["objective"], 1e-6)
	assert.Len(t, report["critical"], 8)
	assert.Len(t, report["scenarios"], 3)

	assert.Len(t, doc["routes"], 5)
	assert.InDelta(t, 14950, doc["lower_bound"], 1e-6)

	cmp := doc["capacity"].(map[string]any)
	assert.Equal(t, "Increase", cmp["effect"])
	assert.InDelta(t, 700, cmp["difference"], 1e-6)

	solves := doc["solves"].(map[string]any)
	// 156 analysis solves plus the two capacity variants.
	assert.InDelta(t, 158, solves["Optimal"], 0)
}

func TestRun_CapacitatedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: line
sources: [{id: P, supply: 10}]
hubs: [H]
destinations: [{id: M, demand: 10}]
arcs:
  - {from: P, to: H, cost: 2, capacity: 10}
  - {from: H, to: M, cost: 3, capacity: 12}
`), 0o600))
	t.Setenv("TRANSSHIP_METRICS_ENABLED", "false")

	doc := runJSON(t, "--network", path, "--capacitated")
	assert.Equal(t, "line", doc["network"])
	assert.NotContains(t, doc, "solves")

	report := doc["report"].(map[string]any)
	assert.InDelta(t, 50, report["baseline"].(map[string]any)["objective"], 1e-6)
	// two node rows plus one balance row plus two capacity rows
	assert.Len(t, report["shadow_prices"], 5)

	cmp := doc["capacity"].(map[string]any)
	assert.Equal(t, "Unchanged", cmp["effect"])
	assert.Len(t, cmp["active"], 1)
}

func TestRun_ArcKeysUnescaped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--log-level", "error"}, &buf))

	assert.Contains(t, buf.String(), `"S1->H1"`)
	assert.NotContains(t, buf.String(), `\u003e`)
}

func TestRun_IsolatedZeroDemandDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spur.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: spur
sources: [{id: S1, supply: 10}]
hubs: [H1]
destinations: [{id: D1, demand: 10}, {id: D2, demand: 0}]
arcs:
  - {from: S1, to: H1, cost: 2}
  - {from: H1, to: D1, cost: 3}
`), 0o600))

	doc := runJSON(t, "--network", path)
	assert.InDelta(t, 50, doc["report"].(map[string]any)["baseline"].(map[string]any)["objective"], 1e-6)
	assert.InDelta(t, 50, doc["lower_bound"], 1e-6)

	routes := doc["routes"].([]any)
	require.Len(t, routes, 2)
	assert.Equal(t, true, routes[0].(map[string]any)["reachable"])
	spur := routes[1].(map[string]any)
	assert.Equal(t, "D2", spur["destination"])
	assert.Equal(t, false, spur["reachable"])
	assert.NotContains(t, spur, "path")
}

func TestRun_Errors(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	require.Error(t, run(ctx, []string{"--no-such-flag"}, &buf))
	require.Error(t, run(ctx, []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, &buf))
	require.Error(t, run(ctx, []string{"--log-level", "shout"}, &buf))
	require.Error(t, run(ctx, []string{"--log-level", "error", "--network", filepath.Join(t.TempDir(), "absent.yaml")}, &buf))
	assert.Zero(t, buf.Len())
}
