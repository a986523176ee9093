package server

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// DashboardRoutes serves the HTML page, its form submit and its chart frame.
type DashboardRoutes interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	PostFetch(w http.ResponseWriter, r *http.Request)
	GetChart(w http.ResponseWriter, r *http.Request)
}

// WeatherRoutes serves the JSON API.
type WeatherRoutes interface {
	GetWeather(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	dashboardHandler DashboardRoutes
	weatherHandler   WeatherRoutes
	metricsHandler   http.Handler
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	dashboardHandler DashboardRoutes,
	weatherHandler WeatherRoutes,
	metricsHandler http.Handler,
	router *mux.Router) *Router {
	return &Router{
		dashboardHandler: dashboardHandler,
		weatherHandler:   weatherHandler,
		metricsHandler:   metricsHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/", r.dashboardHandler.GetDashboard).Methods("GET")
	r.router.HandleFunc("/fetch", r.dashboardHandler.PostFetch).Methods("POST")
	r.router.HandleFunc("/chart", r.dashboardHandler.GetChart).Methods("GET")

	api := r.router.PathPrefix("/v1").Subrouter()
	api.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	// expects ?latitude=&longitude=&start_date=&end_date=
	api.HandleFunc("/weather", r.weatherHandler.GetWeather).Methods("GET", "OPTIONS")

	r.router.HandleFunc("/ping", r.weatherHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", r.metricsHandler).Methods("GET")
}
