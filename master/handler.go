package master

import (
	"encoding/json"
	"log"
	"net/http"
)

const maxRequestBody = 1 << 16 // 64 KB

type registerRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
	Level      string `json:"level"`
	MatchID    string `json:"matchId"`
}

type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Level   string `json:"level"`
}

// NewHandler serves the directory API:
//
//	GET  /servers[?version=v]
//	POST /servers/register
//	POST /servers/heartbeat
//	GET  /health
func NewHandler(reg *Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servers", listHosts(reg))
	mux.HandleFunc("POST /servers/register", registerHost(reg))
	mux.HandleFunc("POST /servers/heartbeat", heartbeat(reg))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func listHosts(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reg.List(r.URL.Query().Get("version")))
	}
}

func registerHost(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decode(w, r, &req) {
			return
		}
		if req.Name == "" || req.Address == "" {
			writeError(w, http.StatusBadRequest, "name and address required")
			return
		}

		id := reg.Register(Listing{
			Name:       req.Name,
			Address:    req.Address,
			Players:    req.Players,
			MaxPlayers: req.MaxPlayers,
			Version:    req.Version,
			Region:     req.Region,
			Level:      req.Level,
			MatchID:    req.MatchID,
		})
		log.Printf("[master] listed %q at %s (id=%s)", req.Name, req.Address, id)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func heartbeat(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req heartbeatRequest
		if !decode(w, r, &req) {
			return
		}
		if !reg.Heartbeat(req.ID, req.Players, req.Level) {
			writeError(w, http.StatusNotFound, "unknown server")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[master] encode error: %v", err)
	}
}
