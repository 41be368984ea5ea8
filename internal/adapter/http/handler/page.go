package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/middleware"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/validator"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"selected": func(values []string, v string) bool { return slices.Contains(values, v) },
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

type SessionValidator interface {
	Validate(ctx context.Context, token string) (*models.Session, error)
}

// Page serves the browser dashboard.
type Page struct {
	service   DashboardService
	sessions  SessionValidator
	maxUpload int64
	l         logger.Logger
}

func NewPage(service DashboardService, sessions SessionValidator, maxUpload int64, l logger.Logger) *Page {
	return &Page{
		service:   service,
		sessions:  sessions,
		maxUpload: maxUpload,
		l:         l,
	}
}

type pageData struct {
	Dashboard   *models.Dashboard
	Filter      dto.FilterRequest
	Error       string
	Errors      map[string]string
	MaxUploadMB int64
}

// Index renders the dashboard of the session cookie's dataset, or the upload form.
func (h *Page) Index(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionRenderPage)
	data := pageData{MaxUploadMB: h.maxUpload >> 20}

	token, err := middleware.TokenFromRequest(r)
	if err != nil {
		h.render(ctx, w, http.StatusOK, data)
		return
	}

	sess, err := h.sessions.Validate(ctx, token)
	if err != nil {
		clearSessionCookie(w)
		data.Error = "Your session has expired. Upload the file again."
		h.render(ctx, w, http.StatusOK, data)
		return
	}
	ctx = wrap.WithSessionID(wrap.WithDatasetID(ctx, sess.DatasetID.String()), sess.ID)

	data.Filter = dto.FilterFromQuery(r.URL.Query())
	v := validator.New()
	data.Filter.Validate(v)
	query := data.Filter.ToModel()
	if !v.Valid() {
		// keep the category filters, fall back to the full date range
		data.Errors = v.Errors
		query.From, query.To = time.Time{}, time.Time{}
	}

	dash, err := h.service.Compute(ctx, sess.DatasetID, query)
	if errors.Is(err, types.ErrDatasetNotFound) {
		clearSessionCookie(w)
		data.Error = "The dataset is no longer loaded. Upload the file again."
		h.render(ctx, w, http.StatusOK, data)
		return
	}
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to compute dashboard", err)
		data.Error = clientMessage(err)
		h.render(ctx, w, GetCode(err), data)
		return
	}

	data.Dashboard = dash
	h.render(ctx, w, http.StatusOK, data)
}

// Upload loads the posted file and redirects to the dashboard.
func (h *Page) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionUploadDataset)

	res, err := upload(w, r, h.service, h.maxUpload)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "upload rejected", "error", err.Error())
		h.render(ctx, w, GetCode(err), pageData{
			Error:       clientMessage(err),
			MaxUploadMB: h.maxUpload >> 20,
		})
		return
	}

	setSessionCookie(w, res.Session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Page) render(ctx context.Context, w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to render page", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
