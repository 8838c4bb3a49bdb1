package dashboard

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"campaign-analytics/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"percent":  FormatPercent,
	"currency": FormatCurrency,
	"filters":  Filters,
	"sizes":    RowsPerPageOptions,
	"statuses": domain.Statuses,
}).ParseFS(templateFS, "templates/dashboard.html"))

// WebHandler serves the dashboard page for one Session. Every action is a
// form POST that applies a transition and redirects back to the page.
type WebHandler struct {
	session *Session
	logger  *slog.Logger
	timeout time.Duration
	router  chi.Router
}

// NewWebHandler registers the dashboard routes. timeout bounds each call
// the session makes to the API.
func NewWebHandler(session *Session, timeout time.Duration, logger *slog.Logger) *WebHandler {
	h := &WebHandler{session: session, logger: logger, timeout: timeout}
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.handlePage)
	r.Get("/state", h.handleState)
	r.Post("/refresh", h.handleRefresh)
	r.Post("/filter", h.handleFilter)
	r.Post("/page", h.handleSetPage)
	r.Post("/rows", h.handleRows)
	r.Post("/modal/open", h.handleModal(State.OpenModal))
	r.Post("/modal/close", h.handleModal(State.CloseModal))
	r.Post("/campaigns", h.handleCreate)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *WebHandler) Router() http.Handler {
	return h.router
}

func (h *WebHandler) handlePage(w http.ResponseWriter, r *http.Request) {
	view := Derive(h.session.State())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
	}
}

// handleState exposes the session state and its derived totals as JSON.
func (h *WebHandler) handleState(w http.ResponseWriter, _ *http.Request) {
	view := Derive(h.session.State())
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(struct {
		State      State  `json:"state"`
		Totals     Totals `json:"totals"`
		Page       int    `json:"page"`
		TotalPages int    `json:"total_pages"`
	}{view.State, view.Totals, view.Page, view.TotalPages})
	if err != nil {
		h.logger.Error("encode state", slog.Any("error", err))
	}
}

func (h *WebHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.apiContext(r)
	defer cancel()
	_ = h.session.Refresh(ctx)
	redirectHome(w, r)
}

func (h *WebHandler) handleFilter(w http.ResponseWriter, r *http.Request) {
	if f, ok := ParseFilter(r.FormValue("status")); ok {
		h.session.Update(func(s State) State { return s.SetFilter(f) })
	}
	redirectHome(w, r)
}

func (h *WebHandler) handleSetPage(w http.ResponseWriter, r *http.Request) {
	if page, err := strconv.Atoi(r.FormValue("page")); err == nil {
		h.session.Update(func(s State) State { return s.SetPage(page) })
	}
	redirectHome(w, r)
}

func (h *WebHandler) handleRows(w http.ResponseWriter, r *http.Request) {
	if n, err := strconv.Atoi(r.FormValue("rows")); err == nil {
		h.session.Update(func(s State) State { return s.SetRowsPerPage(n) })
	}
	redirectHome(w, r)
}

func (h *WebHandler) handleModal(fn func(State) State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.session.Update(fn)
		redirectHome(w, r)
	}
}

// handleCreate submits the modal form. Failures are recorded in the
// session state and shown on the redirected page.
func (h *WebHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.apiContext(r)
	defer cancel()
	_ = h.session.SubmitCampaign(ctx, r.FormValue("campaign_name"), domain.Status(r.FormValue("status")))
	redirectHome(w, r)
}

func (h *WebHandler) apiContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
