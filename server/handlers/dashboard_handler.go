package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"weather-dashboard/config"
	"weather-dashboard/models"
	services "weather-dashboard/service"
	"weather-dashboard/util"
)

const (
	LATITUDE_FORM_ARG   = "latitude"
	LONGITUDE_FORM_ARG  = "longitude"
	START_DATE_FORM_ARG = "start_date"
	END_DATE_FORM_ARG   = "end_date"

	BUTTON_LABEL_IDLE    = "Fetch Weather Data"
	BUTTON_LABEL_LOADING = "Loading..."
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"formatTemperature": util.FormatTemperature}).
		ParseFS(templatesFS, "templates/dashboard.html"))

// dashboardPage is the view model of the dashboard template.
type dashboardPage struct {
	State       models.UIState
	Columns     []string
	Table       []models.TableRow
	ButtonLabel string
}

type DashboardHandler struct {
	sessions   *services.SessionService
	sessionTTL time.Duration
}

func NewDashboardHandler(sessions *services.SessionService, sessionTTL time.Duration) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, sessionTTL: sessionTTL}
}

// GetDashboard handles GET /: renders the form, error banner, chart frame and table for the session.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	state, ok := h.loadState(w, r)
	if !ok {
		return
	}

	page := dashboardPage{
		State:       *state,
		Columns:     services.TableColumns,
		Table:       services.MapTable(state.WeatherData),
		ButtonLabel: BUTTON_LABEL_IDLE,
	}
	if state.Loading {
		page.ButtonLabel = BUTTON_LABEL_LOADING
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, page); err != nil {
		log.Println("[DashboardHandler] Error rendering dashboard:", err)
	}
}

// PostFetch handles POST /fetch: runs the fetch lifecycle for the session, then redirects to the page.
// Validation and fetch failures are part of the stored state, so they also end in a redirect.
func (h *DashboardHandler) PostFetch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	input := models.QueryInput{
		Latitude:  r.PostFormValue(LATITUDE_FORM_ARG),
		Longitude: r.PostFormValue(LONGITUDE_FORM_ARG),
		StartDate: r.PostFormValue(START_DATE_FORM_ARG),
		EndDate:   r.PostFormValue(END_DATE_FORM_ARG),
	}

	sessionID := h.sessionID(w, r)
	if _, err := h.sessions.Trigger(r.Context(), sessionID, input); err != nil && !isUserFacing(err) {
		log.Println("[DashboardHandler] Error running fetch:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetChart handles GET /chart: the go-echarts page for the session's series, empty when there is none.
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	state, ok := h.loadState(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderTemperatureChart(w, services.MapChart(state.WeatherData)); err != nil {
		log.Println("[DashboardHandler] Error rendering chart:", err)
	}
}

func (h *DashboardHandler) loadState(w http.ResponseWriter, r *http.Request) (*models.UIState, bool) {
	state, err := h.sessions.Load(h.sessionID(w, r))
	if err != nil {
		log.Println("[DashboardHandler] Error loading session:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return state, true
}

// sessionID returns the caller's session id, issuing a new cookie when it is missing or malformed.
func (h *DashboardHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(config.SESSION_COOKIE_NAME); err == nil && h.sessions.IsValidSessionID(c.Value) {
		return c.Value
	}

	id := h.sessions.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     config.SESSION_COOKIE_NAME,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
