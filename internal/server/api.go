package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/metrics"
)

type counterResponse struct {
	Count int `json:"count"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Count    int    `json:"count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.Sessions(),
		Count:    s.app.Store().Count(),
	})
}

func (s *Server) handleGetCounter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, counterResponse{Count: s.app.Store().Count()})
}

// handleMutateCounter applies the operation and replies with the count seen
// right after it; every live session has re-rendered by then.
func (s *Server) handleMutateCounter(w http.ResponseWriter, r *http.Request) {
	counter := s.app.Store()
	op := mux.Vars(r)["op"]

	switch op {
	case "increment":
		counter.Increment()
	case "decrement":
		counter.Decrement()
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown operation " + op})
		return
	}
	metrics.RecordMutation(op, "api")

	writeJSON(w, http.StatusOK, counterResponse{Count: counter.Count()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		console.Error("write response:", err)
	}
}
