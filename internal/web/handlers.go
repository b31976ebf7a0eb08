package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/ops"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// Handlers contains HTTP route handlers for the dashboard.
type Handlers struct {
	store    *ledger.Store
	tax      *taxonomy.Taxonomy
	cfg      *config.Config
	renderer *Renderer
}

// HandleDashboard handles GET /dashboard: the weekly report page.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	input := ops.WeekInput{Reference: r.URL.Query().Get("reference")}

	result, err := ops.WeekReport(h.store, h.tax, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "dashboard", DashboardPageData{
		PageData: PageData{
			Title:   "Semana",
			Version: h.renderer.version,
			Nav:     "dashboard",
		},
		Week:       result.Week,
		ReportHTML: renderMarkdown(result.Markdown),
		Notices:    result.Notices,
		LogMessage: r.URL.Query().Get("logged"),
	})
}

// HandleLog handles POST /log: the dashboard's entry form.
func (h *Handlers) HandleLog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	sleep, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("sleep_hours")), 64)
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("sleep_hours must be a number"))
		return
	}
	mood, err := strconv.Atoi(strings.TrimSpace(r.FormValue("mood")))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("mood must be an integer"))
		return
	}

	result, err := ops.Log(h.store, h.tax, ops.LogInput{
		Date:       r.FormValue("date"),
		Foods:      r.FormValue("foods"),
		SleepHours: sleep,
		Exercise:   r.FormValue("exercise"),
		Mood:       mood,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: back to the dashboard
	http.Redirect(w, r, "/dashboard?logged=1", http.StatusFound)
}

// HandleHistory handles GET /history: entries newest first.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	input := ops.HistoryInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultHistoryLimit),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.History(h.store, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "history", HistoryPageData{
		PageData: PageData{
			Title:   "Historial",
			Version: h.renderer.version,
			Nav:     "history",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		Notices:    result.Notices,
	})
}

// HandleTaxonomy handles GET /taxonomy: the category browser.
func (h *Handlers) HandleTaxonomy(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "taxonomy", TaxonomyPageData{
		PageData: PageData{
			Title:   "Alimentos",
			Version: h.renderer.version,
			Nav:     "taxonomy",
		},
		Categories: h.tax.Categories(),
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
