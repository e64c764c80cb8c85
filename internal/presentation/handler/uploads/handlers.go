package uploads

import (
	"errors"
	"net/http"

	"github.com/swaroop-surya/chatroom/internal/infrastructure/json"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/metrics"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/uploads"
)

type Handler struct {
	svc     *uploads.Service
	metrics *metrics.Metrics
	maxSize int64
}

func NewHandler(svc *uploads.Service, m *metrics.Metrics, maxSize int64) *Handler {
	return &Handler{svc: svc, metrics: m, maxSize: maxSize}
}

func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		json.WriteError(w, http.StatusRequestEntityTooLarge, err, "file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		json.WriteBadRequestError(w, "no file provided")
		return
	}
	defer file.Close()

	username := r.FormValue("username")
	if username == "" {
		username = "anonymous"
	}

	att, err := h.svc.Save(r.Context(), file, header, username)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrTooLarge):
			json.WriteError(w, http.StatusRequestEntityTooLarge, err, "file too large")
		case errors.Is(err, uploads.ErrRejectedType):
			json.WriteError(w, http.StatusUnsupportedMediaType, err, "file type not allowed")
		case errors.Is(err, uploads.ErrEmptyFile):
			json.WriteBadRequestError(w, "empty file")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	h.metrics.UploadsTotal.Inc()
	json.Write(w, http.StatusOK, uploadResponse{OK: true, File: att})
}
