// File: control/control_test.go
// License: Apache-2.0

package control_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chbm/anellus/control"
)

func TestConfigStoreTypedGetters(t *testing.T) {
	cs := control.NewConfigStore()
	cs.Set(map[string]any{
		"workers": 8,
		"pin":     true,
		"policy":  "yield",
	})
	assert.Equal(t, 8, cs.GetInt("workers", 1))
	assert.Equal(t, 1, cs.GetInt("missing", 1))
	assert.Equal(t, 1, cs.GetInt("policy", 1)) // wrong type falls back
	assert.True(t, cs.GetBool("pin", false))
	assert.Equal(t, "yield", cs.GetString("policy", "none"))
}

func TestConfigStoreSnapshotIsCopy(t *testing.T) {
	cs := control.NewConfigStore()
	cs.Set(map[string]any{"k": 1})
	snap := cs.Snapshot()
	snap["k"] = 99
	assert.Equal(t, 1, cs.GetInt("k", 0))
}

func TestConfigStoreReloadListener(t *testing.T) {
	cs := control.NewConfigStore()
	fired := make(chan struct{}, 1)
	cs.OnReload(func() { fired <- struct{}{} })
	cs.Set(map[string]any{"k": 1})
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("reload listener never fired")
	}
}

func TestMetricsSnapshotAndPublish(t *testing.T) {
	m := &control.Metrics{}
	m.Enqueued.Add(3)
	m.Full.Add(1)

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap["enqueued"])
	assert.Equal(t, int64(1), snap["full"])
	assert.Equal(t, int64(0), snap["retries"])

	r := control.NewRegistry()
	m.Publish(r, "ring")
	out := r.Snapshot()
	assert.Equal(t, int64(3), out["ring.enqueued"])
	require.False(t, r.Updated().IsZero())
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *control.Metrics
	assert.Empty(t, m.Snapshot())
}

func TestProbesDumpState(t *testing.T) {
	p := control.NewProbes()
	p.Register("answer", func() any { return 42 })
	out := p.DumpState()
	require.Len(t, out, 1)
	assert.Equal(t, 42, out["answer"])
}
