// Package health exposes liveness and readiness endpoints for the ops
// listener. Readiness aggregates pluggable checkers so a wedged database
// takes the instance out of rotation without killing it.
package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status is the outcome of a single check or of the whole probe.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// Check is the reported state of one dependency.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Response is the JSON body written by the readiness probe.
type Response struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks,omitempty"`
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check() error
}

// Handler aggregates registered checkers into a readiness probe.
type Handler struct {
	mu       sync.RWMutex
	version  string
	checkers []Checker
}

func NewHandler(version string) *Handler {
	return &Handler{version: version}
}

// RegisterChecker adds a dependency probe. Safe to call concurrently with
// serving, though in practice registration happens during startup.
func (h *Handler) RegisterChecker(c Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, c)
}

// ServeHTTP runs every checker and reports 503 when any of them fails.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checkers := make([]Checker, len(h.checkers))
	copy(checkers, h.checkers)
	h.mu.RUnlock()

	resp := Response{
		Status:    StatusOK,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	}

	for _, c := range checkers {
		check := Check{Name: c.Name(), Status: StatusOK}
		if err := c.Check(); err != nil {
			check.Status = StatusDegraded
			check.Error = err.Error()
			resp.Status = StatusDegraded
		}
		resp.Checks = append(resp.Checks, check)
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != StatusOK {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// LivenessHandler answers 200 as long as the process can serve HTTP at all.
func LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}

// SimpleChecker wraps a probe function as a Checker.
type SimpleChecker struct {
	name  string
	check func() error
}

func NewSimpleChecker(name string, check func() error) *SimpleChecker {
	return &SimpleChecker{name: name, check: check}
}

func (c *SimpleChecker) Name() string { return c.name }
func (c *SimpleChecker) Check() error { return c.check() }

var _ Checker = (*SimpleChecker)(nil)
