// Package api serves the progression engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/abhisek/arise/internal/api/recovery"
	"github.com/abhisek/arise/internal/engine"
	"github.com/abhisek/arise/internal/transcribe"
)

// Deps are the collaborators the HTTP layer needs. Transcriber and
// Gatherer are optional: without a transcriber audio uploads answer 503,
// and without a gatherer /metrics is not registered.
type Deps struct {
	Engine      *engine.Engine
	Transcriber transcribe.Transcriber
	Gatherer    prometheus.Gatherer
	Log         zerolog.Logger
	Version     string
	// TranscribeTimeout bounds a single transcription call.
	TranscribeTimeout time.Duration
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(d Deps) *mux.Router {
	if d.TranscribeTimeout <= 0 {
		d.TranscribeTimeout = 60 * time.Second
	}

	router := mux.NewRouter()
	router.Use(recovery.Middleware(d.Log))
	router.Use(requestLogger(d.Log))

	h := &handler{
		eng:               d.Engine,
		transcriber:       d.Transcriber,
		transcribeTimeout: d.TranscribeTimeout,
		log:               d.Log,
		version:           d.Version,
	}

	router.HandleFunc("/api/health", h.health).Methods("GET")
	router.HandleFunc("/api/stats", h.stats).Methods("GET")

	router.HandleFunc("/api/user/{userId}", h.getUser).Methods("GET")

	router.HandleFunc("/api/journal/{userId}", h.submitEntry).Methods("POST")
	router.HandleFunc("/api/journal/{userId}", h.listEntries).Methods("GET")

	router.HandleFunc("/api/quests/{userId}", h.getQuests).Methods("GET")
	router.HandleFunc("/api/quests/{userId}/complete/{questId}", h.completeQuest).Methods("POST")

	router.HandleFunc("/api/rewards/{userId}", h.getRewards).Methods("GET")

	if d.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
