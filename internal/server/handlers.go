package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"bir-schedule/internal/domain"
	"bir-schedule/internal/espn"
)

type syncRequest struct {
	League string `json:"league"`
	Date   string `json:"date"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleScoreboardProxy forwards the upstream scoreboard response verbatim.
// The browser cannot call the upstream directly because of CORS.
func (s *Server) handleScoreboardProxy(w http.ResponseWriter, r *http.Request) {
	league := mux.Vars(r)["league"]
	date := r.URL.Query().Get("date")

	body, err := s.espn.FetchScoreboardRaw(r.Context(), league, date)
	if err != nil {
		if errors.Is(err, espn.ErrUnknownLeague) || errors.Is(err, espn.ErrInvalidDate) {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		s.logger.Error().Err(err).Str("league", league).Str("date", date).Msg("scoreboard proxy failed")
		respondError(w, http.StatusBadGateway, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.svc.Games(r.Context(), r.URL.Query().Get("sport"))
	respondJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var game domain.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, s.svc.AddGame(r.Context(), game))
}

func (s *Server) handleLastSynced(w http.ResponseWriter, r *http.Request) {
	sport := mux.Vars(r)["sport"]
	syncedAt := s.svc.LastSynced(r.Context(), sport)
	respondJSON(w, http.StatusOK, map[string]string{"sport": sport, "lastSynced": syncedAt})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSyncRequest(w, r)
	if !ok {
		return
	}
	sum, err := s.svc.SyncLeague(r.Context(), req.League, req.Date)
	if err != nil {
		s.respondFetchError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}
	results := s.svc.SyncAll(r.Context(), req.Date)
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSyncRequest(w, r)
	if !ok {
		return
	}
	sum, err := s.svc.PreviewLeague(r.Context(), req.League, req.Date)
	if err != nil {
		s.respondFetchError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	if err := s.svc.ExportCSV(r.Context(), w, r.URL.Query().Get("sport")); err != nil {
		s.logger.Error().Err(err).Msg("CSV export failed")
	}
}

func decodeSyncRequest(w http.ResponseWriter, r *http.Request) (syncRequest, bool) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return req, false
	}
	if _, ok := espn.LeaguePath(req.League); !ok {
		respondError(w, http.StatusBadRequest, espn.ErrUnknownLeague)
		return req, false
	}
	return req, true
}

func (s *Server) respondFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, espn.ErrUnknownLeague) || errors.Is(err, espn.ErrInvalidDate) {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondError(w, http.StatusBadGateway, err)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
