package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/swaggo/swag"

	"promptquest/docs"
	"promptquest/internal/service"
	"promptquest/internal/transport/rest/handler"
	"promptquest/internal/transport/rest/middleware"
	"promptquest/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	LevelService       *service.LevelService
	Evaluator          service.Evaluator
	ProgressionService *service.ProgressionService
	WSHub              *ws.Hub
	CORSAllowedOrigins []string
	SubmitRatePerMin   int
	SubmitBurst        int
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	levelHandler := handler.NewLevelHandler(c.LevelService, c.Evaluator)
	sessionHandler := handler.NewSessionHandler(c.ProgressionService)
	wsHandler := ws.NewHandler(c.WSHub, c.ProgressionService)

	// Initialize middleware
	sessionMW := middleware.NewSessionMiddleware(c.ProgressionService)
	limiter := middleware.NewRateLimiter(c.SubmitRatePerMin, c.SubmitBurst)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, `{"error":"api docs unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/levels", levelHandler.List).Methods("GET")
	v1.Handle("/evaluate", limiter.Limit(http.HandlerFunc(levelHandler.Evaluate))).Methods("POST")
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Session routes (require session token)
	sessionRoutes := v1.PathPrefix("/sessions/{id}").Subrouter()
	sessionRoutes.Use(sessionMW.RequireSession)

	sessionRoutes.HandleFunc("", sessionHandler.Get).Methods("GET")
	sessionRoutes.HandleFunc("", sessionHandler.End).Methods("DELETE")
	sessionRoutes.Handle("/submissions", limiter.Limit(http.HandlerFunc(sessionHandler.Submit))).Methods("POST")
	sessionRoutes.HandleFunc("/skip", sessionHandler.Skip).Methods("POST")
	sessionRoutes.HandleFunc("/advance", sessionHandler.Advance).Methods("POST")
	sessionRoutes.HandleFunc("/restart", sessionHandler.Restart).Methods("POST")
	sessionRoutes.HandleFunc("/hints/toggle", sessionHandler.ToggleHints).Methods("POST")
	sessionRoutes.HandleFunc("/hints/next", sessionHandler.NextHint).Methods("POST")
	sessionRoutes.HandleFunc("/hints/prev", sessionHandler.PrevHint).Methods("POST")

	origins := c.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}
