// Package apitest provides an in-process fake of the composition service
// for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/bytedance/sonic"

	"clipdeck/internal/composition"
)

// Call records one request the fake received.
type Call struct {
	Method string
	Layer  int
	Slot   int
	Path   string
}

func (c Call) String() string {
	return fmt.Sprintf("%s %d/%d", c.Method, c.Layer, c.Slot)
}

type slotKey struct{ layer, slot int }

// Server serves a mutable composition and records every request.
type Server struct {
	*httptest.Server

	mu              sync.Mutex
	comp            composition.Composition
	calls           []Call
	compositionCode int
	rawComposition  string
	connectCodes    map[slotKey]int
	hook            func(Call)
}

// NewServer starts a fake service holding comp. Callers must Close it.
func NewServer(comp composition.Composition) *Server {
	s := &Server{comp: comp, connectCodes: make(map[slotKey]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/composition", s.handleComposition)
	mux.HandleFunc("GET /api/v1/composition/layers/{layer}/clips/{slot}", s.handleSlot)
	mux.HandleFunc("POST /api/v1/composition/layers/{layer}/clips/{slot}/connect", s.handleConnect)
	s.Server = httptest.NewServer(mux)
	return s
}

// BaseURL returns the API root to hand to api.New.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

// SetComposition replaces the served composition.
func (s *Server) SetComposition(comp composition.Composition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comp = comp
}

// FailComposition makes GET /composition answer with code (0 restores).
func (s *Server) FailComposition(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compositionCode = code
}

// RawComposition serves body verbatim for GET /composition ("" restores).
func (s *Server) RawComposition(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawComposition = body
}

// FailConnect makes connects to (layer, slot) answer with code.
func (s *Server) FailConnect(layer, slot, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectCodes[slotKey{layer, slot}] = code
}

// OnCall registers a hook run synchronously for every request.
func (s *Server) OnCall(fn func(Call)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = fn
}

// Calls returns a copy of the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Connects returns only the connect requests, in arrival order.
func (s *Server) Connects() []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == http.MethodPost {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) record(r *http.Request, layer, slot int) {
	c := Call{Method: r.Method, Layer: layer, Slot: slot, Path: r.URL.Path}
	s.mu.Lock()
	s.calls = append(s.calls, c)
	hook := s.hook
	s.mu.Unlock()
	if hook != nil {
		hook(c)
	}
}

func (s *Server) handleComposition(w http.ResponseWriter, r *http.Request) {
	s.record(r, 0, 0)

	s.mu.Lock()
	code, raw, comp := s.compositionCode, s.rawComposition, s.comp
	s.mu.Unlock()

	if code != 0 {
		http.Error(w, http.StatusText(code), code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if raw != "" {
		_, _ = w.Write([]byte(raw))
		return
	}
	writeJSON(w, comp)
}

func (s *Server) handleSlot(w http.ResponseWriter, r *http.Request) {
	layer, slot, ok := parseSlot(w, r)
	if !ok {
		return
	}
	s.record(r, layer, slot)

	s.mu.Lock()
	l, found := s.comp.Layer(layer)
	s.mu.Unlock()

	type clipRef struct {
		ID int64 `json:"id"`
	}
	resp := struct {
		Clip *clipRef `json:"clip"`
	}{}
	if found && slot >= 1 && slot <= len(l.Clips) && l.Clips[slot-1].HasName() {
		resp.Clip = &clipRef{ID: l.Clips[slot-1].ID}
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	layer, slot, ok := parseSlot(w, r)
	if !ok {
		return
	}
	s.record(r, layer, slot)

	s.mu.Lock()
	code := s.connectCodes[slotKey{layer, slot}]
	s.mu.Unlock()

	if code != 0 {
		http.Error(w, http.StatusText(code), code)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseSlot(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	layer, err := strconv.Atoi(r.PathValue("layer"))
	if err != nil {
		http.Error(w, "bad layer", http.StatusBadRequest)
		return 0, 0, false
	}
	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil {
		http.Error(w, "bad slot", http.StatusBadRequest)
		return 0, 0, false
	}
	return layer, slot, true
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(data)
}
