// Copyright (c) 2019 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package statsserver exposes the solver's trim-round progress over
// HTTP/WebSocket, adapted from the teacher's stats_server package:
// /status replaces /miner_data and /ws streams the same kind of live
// snapshot, just of trimming progress instead of per-device hashrate.
package statsserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Qitmeer/cuckoocycle/common"
	"github.com/Qitmeer/cuckoocycle/statsserver/websocket"
)

// Handler tracks the most recent progress snapshot and serves it over
// HTTP, mirroring the teacher's HandleRouter's role as the single place
// that wires config state to handlers.
type Handler struct {
	addr string

	mu    sync.Mutex
	start time.Time
	last  websocket.Snapshot
}

// New builds a Handler that will listen on addr once Serve is called.
func New(addr string) *Handler {
	return &Handler{addr: addr, start: time.Now()}
}

// Report records one trim-round progress update and broadcasts it to
// every connected websocket client. Suitable for use directly as a
// cuckoo.Solve onProgress callback.
func (h *Handler) Report(round uint, alive uint64) {
	snap := websocket.Snapshot{
		Round:      round,
		AliveCount: alive,
		ElapsedMS:  time.Since(h.start).Milliseconds(),
	}
	h.mu.Lock()
	h.last = snap
	h.mu.Unlock()
	websocket.Manager.Broadcast(snap)
}

// ReportStatus records the solve's final status, for /status polling
// after trimming completes.
func (h *Handler) ReportStatus(status string) {
	h.mu.Lock()
	h.last.Status = status
	snap := h.last
	h.mu.Unlock()
	websocket.Manager.Broadcast(snap)
}

func (h *Handler) snapshot() websocket.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Serve starts the HTTP+WebSocket listener. It blocks, so callers start
// it in a goroutine exactly like the teacher's main.go does with
// stats_server.HandleRouter.
func (h *Handler) Serve() {
	common.SolverLoger.Info("stats server start " + h.addr)
	go websocket.Manager.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.snapshot())
	})
	mux.HandleFunc("/ws", websocket.ServeWS)

	if err := http.ListenAndServe(h.addr, mux); err != nil {
		common.SolverLoger.Error(err.Error())
	}
}
