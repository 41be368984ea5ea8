package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/middleware"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/validator"
)

const (
	uploadField = "file"
	// room for the multipart envelope around the file itself
	multipartOverhead = 1 << 20
)

type DashboardService interface {
	Upload(ctx context.Context, name string, r io.Reader, source string) (*models.UploadResult, error)
	Info(ctx context.Context, id uuid.UUID) (*models.DatasetInfo, error)
	Compute(ctx context.Context, id uuid.UUID, q models.FilterQuery) (*models.Dashboard, error)
	Export(ctx context.Context, id uuid.UUID, q models.FilterQuery, format types.FileFormat, w io.Writer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentTyper names the MIME type and extension of an export format.
type ContentTyper func(format types.FileFormat) (mime, ext string)

type Dataset struct {
	service     DashboardService
	contentType ContentTyper
	maxUpload   int64
	l           logger.Logger
}

func NewDataset(service DashboardService, contentType ContentTyper, maxUpload int64, l logger.Logger) *Dataset {
	return &Dataset{
		service:     service,
		contentType: contentType,
		maxUpload:   maxUpload,
		l:           l,
	}
}

// Upload godoc
// @Summary      Upload a ride records file
// @Description  Loads a CSV or XLSX export into a new session and returns its session token and filter options
// @Tags         datasets
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Ride records (.csv or .xlsx)"
// @Success      201 {object} models.UploadResult
// @Failure      400 {object} map[string]any "Bad request"
// @Failure      413 {object} map[string]any "File too large"
// @Failure      422 {object} map[string]any "Missing columns or unreadable file"
// @Router       /api/v1/datasets [post]
func (h *Dataset) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionUploadDataset)

	res, err := upload(w, r, h.service, h.maxUpload)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "upload rejected", "error", err.Error())
		serviceErrorResponse(w, r, err)
		return
	}

	setSessionCookie(w, res.Session)

	response := envelope{
		"dataset": res.Dataset,
		"options": res.Options,
		"session": res.Session,
		"token":   res.Session.Token,
		"notices": res.Notices,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		return
	}
}

// Get godoc
// @Summary      Dataset summary
// @Description  Returns the dataset summary and the filter options of the session's dataset
// @Tags         datasets
// @Produce      json
// @Param        dataset_id path string true "Dataset ID"
// @Success      200 {object} models.DatasetInfo
// @Failure      401 {object} map[string]any "Unauthorized"
// @Failure      404 {object} map[string]any "Dataset expired"
// @Security     BearerAuth
// @Router       /api/v1/datasets/{dataset_id} [get]
func (h *Dataset) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionGetDataset)
	id := datasetID(r)

	info, err := h.service.Info(ctx, id)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to get dataset", "error", err.Error())
		serviceErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"dataset": info.Dataset, "options": info.Options}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
	}
}

// Dashboard godoc
// @Summary      Filtered dashboard
// @Description  Applies the filters and returns metrics, aggregates, chart URLs and notices
// @Tags         datasets
// @Produce      json
// @Param        dataset_id path string true "Dataset ID"
// @Param        status query []string false "Booking status, repeatable" collectionFormat(multi)
// @Param        vehicle query []string false "Vehicle type, repeatable" collectionFormat(multi)
// @Param        payment query []string false "Payment method, repeatable" collectionFormat(multi)
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} models.Dashboard
// @Failure      401 {object} map[string]any "Unauthorized"
// @Failure      404 {object} map[string]any "Dataset expired"
// @Failure      422 {object} map[string]any "Validation error"
// @Security     BearerAuth
// @Router       /api/v1/datasets/{dataset_id}/dashboard [get]
func (h *Dataset) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionComputeDashboard)
	id := datasetID(r)

	req := dto.FilterFromQuery(r.URL.Query())
	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid filter values")
		failedValidationResponse(w, r, v.Errors)
		return
	}

	dash, err := h.service.Compute(ctx, id, req.ToModel())
	if err != nil {
		h.logServiceError(ctx, err, "failed to compute dashboard")
		serviceErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"dashboard": dash}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
	}
}

// Export godoc
// @Summary      Export the filtered rows
// @Description  Downloads the rows selected by the filters as CSV or XLSX
// @Tags         datasets
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        dataset_id path string true "Dataset ID"
// @Param        format query string false "csv (default) or xlsx"
// @Success      200 {file} file
// @Failure      401 {object} map[string]any "Unauthorized"
// @Failure      422 {object} map[string]any "Validation error"
// @Security     BearerAuth
// @Router       /api/v1/datasets/{dataset_id}/export [get]
func (h *Dataset) Export(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionExportDataset)
	id := datasetID(r)

	filterReq := dto.FilterFromQuery(r.URL.Query())
	exportReq := dto.ExportRequest{Format: r.URL.Query().Get("format")}

	v := validator.New()
	filterReq.Validate(v)
	exportReq.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid export request")
		failedValidationResponse(w, r, v.Errors)
		return
	}

	format := types.FileFormat(exportReq.Format)

	var buf bytes.Buffer
	if err := h.service.Export(ctx, id, filterReq.ToModel(), format, &buf); err != nil {
		h.logServiceError(ctx, err, "failed to export dataset")
		serviceErrorResponse(w, r, err)
		return
	}

	mime, ext := h.contentType(format)
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "rides-"+id.String()[:8]+ext))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write export", err)
	}
}

// Delete godoc
// @Summary      Drop the dataset
// @Description  Removes the session's dataset from memory
// @Tags         datasets
// @Param        dataset_id path string true "Dataset ID"
// @Success      204
// @Failure      401 {object} map[string]any "Unauthorized"
// @Failure      404 {object} map[string]any "Dataset expired"
// @Security     BearerAuth
// @Router       /api/v1/datasets/{dataset_id} [delete]
func (h *Dataset) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionDeleteDataset)
	id := datasetID(r)

	if err := h.service.Delete(ctx, id); err != nil {
		h.logServiceError(ctx, err, "failed to delete dataset")
		serviceErrorResponse(w, r, err)
		return
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Dataset) logServiceError(ctx context.Context, err error, msg string) {
	if GetCode(err) == http.StatusInternalServerError {
		h.l.Error(wrap.ErrorCtx(ctx, err), msg, err)
		return
	}
	h.l.Warn(wrap.ErrorCtx(ctx, err), msg, "error", err.Error())
}

// upload reads the multipart file field and hands it to the service.
func upload(w http.ResponseWriter, r *http.Request, service DashboardService, maxUpload int64) (*models.UploadResult, error) {
	if maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, fmt.Errorf("%w: limit is %d bytes", types.ErrFileTooLarge, maxUpload)
		}
		return nil, fmt.Errorf("%w: multipart field %q is required", errMalformedUpload, uploadField)
	}
	defer file.Close()

	return service.Upload(r.Context(), filepath.Base(header.Filename), file, types.SourceUpload)
}

var errMalformedUpload = errors.New("malformed upload")

// datasetID returns the dataset of the session checked by the session middleware.
func datasetID(r *http.Request) uuid.UUID {
	if s := models.SessionFromContext(r.Context()); s != nil {
		return s.DatasetID
	}
	id, _ := uuid.Parse(r.PathValue("dataset_id"))
	return id
}

func setSessionCookie(w http.ResponseWriter, s *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
