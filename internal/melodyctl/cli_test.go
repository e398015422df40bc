package melodyctl

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"melodyd/pkg/types"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/checkpoints", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.CheckpointsResponse{Checkpoints: []types.Checkpoint{
			{Name: "mel_2bar_big", Path: "/srv/ck/mel_2bar_big.ckpt", Bars: 2},
		}})
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.StatusResponse{State: "ready"})
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("genre") == "polka" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(types.ErrorResponse{Error: "invalid genre: polka"})
			return
		}
		w.Header().Set("Content-Type", "audio/midi")
		w.Header().Set("X-Generation-Id", "deadbeef")
		w.Write([]byte("MThd fake midi"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckpointsCommand(t *testing.T) {
	ts := newFakeServer(t)
	if err := Execute([]string{"checkpoints", "--server", ts.URL}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	ts := newFakeServer(t)
	if err := Execute([]string{"status", "--server", ts.URL}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestGenerateCommandWritesFile(t *testing.T) {
	ts := newFakeServer(t)
	out := filepath.Join(t.TempDir(), "take.mid")
	err := Execute([]string{"generate", "--server", ts.URL,
		"--genre", "pop", "--instrument", "drums", "--bpm", "96", "-o", out})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty output file")
	}
}

func TestGenerateCommandServerError(t *testing.T) {
	ts := newFakeServer(t)
	err := Execute([]string{"generate", "--server", ts.URL, "--genre", "polka"})
	if err == nil {
		t.Fatal("expected error from server rejection")
	}
}
