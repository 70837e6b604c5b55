package server

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"bir-schedule/internal/espn"
	"bir-schedule/internal/service"
)

// Server exposes the schedule API and the upstream scoreboard proxy.
type Server struct {
	svc    *service.ScheduleService
	espn   *espn.Client
	logger zerolog.Logger
}

func New(svc *service.ScheduleService, client *espn.Client, logger zerolog.Logger) *Server {
	return &Server{svc: svc, espn: client, logger: logger}
}

// Routes builds the router. The /api/espn subtree is the pass-through proxy;
// /api/schedule is the master schedule API.
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/espn/{league}/scoreboard", s.handleScoreboardProxy).Methods("GET")

	sched := api.PathPrefix("/schedule").Subrouter()
	sched.HandleFunc("/games", s.handleListGames).Methods("GET")
	sched.HandleFunc("/games", s.handleAddGame).Methods("POST")
	sched.HandleFunc("/last-synced/{sport}", s.handleLastSynced).Methods("GET")
	sched.HandleFunc("/sync", s.handleSync).Methods("POST")
	sched.HandleFunc("/sync-all", s.handleSyncAll).Methods("POST")
	sched.HandleFunc("/preview", s.handlePreview).Methods("POST")
	sched.HandleFunc("/export", s.handleExport).Methods("GET")

	return router
}
