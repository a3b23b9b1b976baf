package observer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

func testManager(t *testing.T) *core.Manager {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.BoardWidth = 12
	cfg.BoardHeight = 10
	cfg.NumberOfWalls = 5
	cfg.Seed = 11

	player := core.NewQueuePlayer(
		core.PlayerAction{Pos: core.P(0, 0), Type: core.ActionBuildRightOutMiningMachine},
		core.PlayerAction{Pos: core.P(0, 1), Type: core.ActionBuildLeftToRightConveyor},
		core.PlayerAction{Pos: core.P(8, 1), Type: core.ActionBuildTopOutCombiner},
	)
	m, err := core.NewManager(cfg, player)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		m.Update()
	}
	return m
}

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	schema, err := jsonschema.CompileString("snapshot.schema.json", string(SnapshotSchema))
	require.NoError(t, err)
	return schema
}

func readSnapshot(t *testing.T, conn *websocket.Conn) (core.Snapshot, any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var snap core.Snapshot
	require.NoError(t, json.Unmarshal(msg, &snap))
	var doc any
	require.NoError(t, json.Unmarshal(msg, &doc))
	return snap, doc
}

func TestSnapshotMatchesSchema(t *testing.T) {
	schema := compileSchema(t)
	m := testManager(t)

	b, err := json.Marshal(core.NewSnapshot(m))
	require.NoError(t, err)
	var doc any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.NoError(t, schema.Validate(doc))

	var bad any
	require.NoError(t, json.Unmarshal([]byte(`{"tick":-1}`), &bad))
	assert.Error(t, schema.Validate(bad))
}

func TestWebSocketStream(t *testing.T) {
	schema := compileSchema(t)
	m := testManager(t)
	s := NewServer(nil)
	require.NoError(t, s.Publish(core.NewSnapshot(m)))

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	first, doc := readSnapshot(t, conn)
	assert.Equal(t, 20, first.Tick)
	assert.NoError(t, schema.Validate(doc))
	assert.Equal(t, 1, s.Clients())

	m.Update()
	require.NoError(t, s.Publish(core.NewSnapshot(m)))
	next, _ := readSnapshot(t, conn)
	assert.Equal(t, 21, next.Tick)
	assert.Equal(t, core.NewSnapshot(m).Hash(), next.Hash())

	conn.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSlowClientDoesNotBlockPublish(t *testing.T) {
	m := testManager(t)
	s := NewServer(nil)
	s.join(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3*clientBuffer; i++ {
			_ = s.Publish(core.NewSnapshot(m))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a client that never reads")
	}
}

func TestSnapshotHandler(t *testing.T) {
	s := NewServer(nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	m := testManager(t)
	require.NoError(t, s.Publish(core.NewSnapshot(m)))

	resp, err = http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap core.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, core.NewSnapshot(m).Hash(), snap.Hash())
}

func TestRemoteClientsRejected(t *testing.T) {
	s := NewServer(nil)
	require.NoError(t, s.Publish(core.Snapshot{}))

	req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	rec := httptest.NewRecorder()
	s.SnapshotHandler()(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.AllowRemote = true
	rec = httptest.NewRecorder()
	s.SnapshotHandler()(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
