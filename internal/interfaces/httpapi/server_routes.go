package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerClubRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/clubs/{clubID}/fixtures/{fixtureID}/tasks:generate", handler.GenerateFixtureTasks)
	mux.HandleFunc("POST /v1/clubs/{clubID}/tasks:generate-upcoming", handler.GenerateUpcomingTasks)
	mux.HandleFunc("GET /v1/clubs/{clubID}/risk-summary", handler.GetRiskSummary)
	mux.HandleFunc("POST /v1/clubs/{clubID}/handovers:preview", handler.PreviewHandover)
	mux.HandleFunc("POST /v1/clubs/{clubID}/handovers", handler.ExecuteHandover)
}
