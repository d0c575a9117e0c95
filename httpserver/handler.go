package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/trainer-intake/interfaces"
	"github.com/ruteri/trainer-intake/metrics"
	"github.com/ruteri/trainer-intake/registration"
)

const (
	// maxBodySize is the maximum allowed registration body size (1MB).
	maxBodySize = 1024 * 1024

	// notifyTimeout bounds the background notification sent after a
	// successful registration.
	notifyTimeout = 10 * time.Second
)

// Messages returned to the client. They are shown verbatim by the form.
const (
	msgNotConfigured = "Banco de dados não configurado."
	msgInvalidJSON   = "JSON inválido"
	msgBodyTooLarge  = "Requisição muito grande."
	msgInvalidData   = "Dados inválidos"
	msgDuplicateCref = "CREF já cadastrado."
	msgNotReady      = "Banco de dados não inicializado. Execute as migrações."
	msgUnreachable   = "Não foi possível conectar ao banco de dados."
	msgSaveFailed    = "Erro ao salvar o cadastro."
	msgListFailed    = "Erro ao carregar os cadastros."
)

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error   string                   `json:"error"`
	Details registration.FieldErrors `json:"details,omitempty"`
	Detail  string                   `json:"detail,omitempty"`
}

// RegisterResponse is the JSON body of a successful registration.
type RegisterResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Handler processes HTTP requests for the registration portal.
// It validates submissions, persists them through the trainer store and
// serves the admin list and export.
type Handler struct {
	store    interfaces.TrainerStore
	photos   interfaces.PhotoStore
	notifier interfaces.Notifier
	log      *slog.Logger

	location *time.Location
	newID    func() string
}

// NewHandler creates a new HTTP request handler with the specified dependencies.
//
// Parameters:
//   - store: Trainer storage; nil means no database is configured and every
//     storage-backed endpoint answers with a "not configured" error
//   - photos: Photo uploader; nil disables the upload endpoint
//   - notifier: Optional notifier invoked after each successful registration
//   - log: Structured logger for operational insights
//
// Returns a configured Handler instance.
func NewHandler(store interfaces.TrainerStore, photos interfaces.PhotoStore, notifier interfaces.Notifier, log *slog.Logger) *Handler {
	loc, err := time.LoadLocation(displayTimeZone)
	if err != nil {
		log.Warn("Time zone data unavailable, admin times are shown in UTC", "zone", displayTimeZone, "err", err)
		loc = time.UTC
	}

	return &Handler{
		store:    store,
		photos:   photos,
		notifier: notifier,
		log:      log,
		location: loc,
		newID:    uuid.NewString,
	}
}

// HandleRegister processes trainer registration submissions.
//
// URL format: POST /api/register
// Request body: JSON object with the registration fields
//
// Response:
//   - 200 {"success":true,"id":"<uuid>"}
//   - 400 invalid JSON, or {"error":"Dados inválidos","details":{...}}
//   - 409 duplicate CREF
//   - 500/503 storage failures, see storageError
//
// Each call performs at most one insert and never retries.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		metrics.RecordIntake(metrics.OutcomeNotConfigured)
		h.log.Error("Registration rejected, no database configured")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgNotConfigured})
		return
	}

	input, reqErr := decodeSubmission(w, r)
	if reqErr != nil {
		metrics.RecordIntake(metrics.OutcomeInvalid)
		h.log.Debug("Rejected malformed registration body", "err", reqErr.Err)
		msg := msgInvalidJSON
		if reqErr.StatusCode == http.StatusRequestEntityTooLarge {
			msg = msgBodyTooLarge
		}
		writeJSON(w, reqErr.StatusCode, ErrorResponse{Error: msg})
		return
	}

	app, fieldErrs := registration.Validate(input)
	if fieldErrs != nil {
		metrics.RecordIntake(metrics.OutcomeInvalid)
		h.log.Debug("Registration failed validation", "fields", fieldErrs.Error())
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidData, Details: fieldErrs})
		return
	}

	app.ID = h.newID()
	created, err := h.store.Create(r.Context(), app)
	if err != nil {
		status, resp, outcome := h.storageError(err, msgSaveFailed)
		metrics.RecordIntake(outcome)
		writeJSON(w, status, resp)
		return
	}

	metrics.RecordIntake(metrics.OutcomeCreated)
	h.log.Info("Trainer registered", "id", created.ID)
	h.notify(created)

	writeJSON(w, http.StatusOK, RegisterResponse{Success: true, ID: created.ID})
}

// decodeSubmission reads the body as a single JSON object.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (map[string]any, *RequestError) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &RequestError{StatusCode: http.StatusRequestEntityTooLarge, Err: err}
		}
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: err}
	}

	var input map[string]any
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: err}
	}
	if input == nil {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: errors.New("body is not a JSON object")}
	}
	return input, nil
}

// storageError maps a TrainerStore error to a status, a response body and a
// metrics outcome. fallback is the message for unclassified errors, which
// also carry the raw error text for diagnostics.
func (h *Handler) storageError(err error, fallback string) (int, ErrorResponse, string) {
	switch {
	case errors.Is(err, interfaces.ErrDuplicateCref):
		h.log.Info("Duplicate CREF rejected")
		return http.StatusConflict, ErrorResponse{Error: msgDuplicateCref}, metrics.OutcomeDuplicate
	case errors.Is(err, interfaces.ErrStorageNotConfigured):
		h.log.Error("No database configured", "err", err)
		return http.StatusInternalServerError, ErrorResponse{Error: msgNotConfigured}, metrics.OutcomeNotConfigured
	case errors.Is(err, interfaces.ErrStorageNotReady):
		h.log.Warn("Database schema missing, run migrations", "err", err)
		return http.StatusServiceUnavailable, ErrorResponse{Error: msgNotReady}, metrics.OutcomeNotReady
	case errors.Is(err, interfaces.ErrStorageUnreachable):
		h.log.Warn("Database unreachable", "err", err)
		return http.StatusServiceUnavailable, ErrorResponse{Error: msgUnreachable}, metrics.OutcomeUnreachable
	default:
		h.log.Error("Storage operation failed", "err", err)
		return http.StatusInternalServerError, ErrorResponse{Error: fallback, Detail: err.Error()}, metrics.OutcomeFailed
	}
}

// notify announces app in the background. Failures are only logged.
func (h *Handler) notify(app *interfaces.TrainerApplication) {
	if h.notifier == nil {
		return
	}
	record := *app
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := h.notifier.NotifyRegistration(ctx, &record); err != nil {
			h.log.Warn("Failed to send registration notification", "id", record.ID, "err", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
