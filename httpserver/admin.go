package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/trainer-intake/interfaces"
	"github.com/ruteri/trainer-intake/metrics"
)

const (
	// adminListLimit caps the admin list view. The CSV export is unbounded.
	adminListLimit = 500

	displayTimeZone   = "America/Sao_Paulo"
	displayTimeLayout = "02/01/2006 15:04"

	exportPath = "/api/admin/export.csv"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type adminRow struct {
	CreatedAt   string
	Name        string
	Whatsapp    string
	Email       string
	Cref        string
	Academies   string
	Residential string
}

type adminPage struct {
	Total     int
	Rows      []adminRow
	ExportURL string
}

type errorPage struct {
	Message string
	Detail  string
}

// AdminRouter returns the router for the admin HTML pages, mounted at /admin.
func (h *Handler) AdminRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleAdminList)
	return r
}

// AdminAPIRouter returns the router for admin API calls, mounted at /api/admin.
func (h *Handler) AdminAPIRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/export.csv", h.HandleExportCSV)
	return r
}

// HandleAdminList renders the most recent registrations, newest first.
//
// Endpoint: GET /admin
//
// An empty store renders an explicit empty state. Storage failures render an
// error page with the same categories the intake endpoint reports.
func (h *Handler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	apps, err := h.list(r, adminListLimit)
	if err != nil {
		status, resp, _ := h.storageError(err, msgListFailed)
		h.renderHTML(w, status, "error.html", errorPage{Message: resp.Error, Detail: resp.Detail})
		return
	}

	page := adminPage{
		Total:     len(apps),
		Rows:      make([]adminRow, 0, len(apps)),
		ExportURL: exportPath,
	}
	for i := range apps {
		page.Rows = append(page.Rows, h.adminRow(&apps[i]))
	}
	h.renderHTML(w, http.StatusOK, "admin.html", page)
}

// HandleExportCSV streams every registration as a CSV attachment.
//
// Endpoint: GET /api/admin/export.csv
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	apps, err := h.list(r, 0)
	if err != nil {
		status, resp, _ := h.storageError(err, msgListFailed)
		writeJSON(w, status, resp)
		return
	}

	var buf bytes.Buffer
	if err := writeCSV(&buf, apps); err != nil {
		h.log.Error("Failed to build CSV export", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgListFailed})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvFilename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Warn("Failed to write CSV export", "err", err)
		return
	}
	metrics.ExportedRows.Add(float64(len(apps)))
	h.log.Info("CSV export served", "rows", len(apps))
}

func (h *Handler) list(r *http.Request, limit int) ([]interfaces.TrainerApplication, error) {
	if h.store == nil {
		return nil, interfaces.ErrStorageNotConfigured
	}
	return h.store.List(r.Context(), limit)
}

func (h *Handler) adminRow(app *interfaces.TrainerApplication) adminRow {
	residential := "Não"
	if app.ResidentialAvailable {
		residential = "Sim"
	}
	return adminRow{
		CreatedAt:   h.displayTime(app.CreatedAt),
		Name:        app.Name,
		Whatsapp:    app.Whatsapp,
		Email:       app.Email,
		Cref:        app.Cref,
		Academies:   app.Academies,
		Residential: residential,
	}
}

// renderHTML executes the named template before writing anything, so a
// template failure still produces a clean 500.
func (h *Handler) renderHTML(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error("Failed to render template", "template", name, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) displayTime(t time.Time) string {
	return t.In(h.location).Format(displayTimeLayout)
}
