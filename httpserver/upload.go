package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
)

const (
	// maxPhotoSize is the largest accepted photo (4MB).
	maxPhotoSize = 4 << 20

	// multipartOverhead leaves room for multipart headers around the file.
	multipartOverhead = 64 << 10

	photoFormField = "file"
)

const (
	msgUploadsDisabled  = "Upload de fotos não configurado."
	msgPhotoMissing     = "Nenhum arquivo enviado."
	msgPhotoTooLarge    = "A foto deve ter no máximo 4MB."
	msgPhotoUnsupported = "Formato de imagem não suportado."
	msgPhotoFailed      = "Erro ao enviar a foto."
)

// photoExtensions lists the accepted sniffed content types.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// PhotoResponse is the JSON body of a successful upload.
type PhotoResponse struct {
	URL string `json:"url"`
}

// HandlePhotoUpload stores one profile photo and returns its public URL,
// which the form then submits as photoUrl.
//
// Endpoint: POST /api/uploads/photo
// Request body: multipart/form-data with the image in field "file"
//
// The content type is sniffed from the bytes; the client supplied type is
// ignored.
func (h *Handler) HandlePhotoUpload(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: msgUploadsDisabled})
		return
	}

	data, reqErr := readPhoto(w, r)
	if reqErr != nil {
		h.log.Debug("Rejected photo upload", "status", reqErr.StatusCode, "err", reqErr.Err)
		writeJSON(w, reqErr.StatusCode, ErrorResponse{Error: reqErr.Error()})
		return
	}

	contentType := http.DetectContentType(data)
	ext, ok := photoExtensions[contentType]
	if !ok {
		h.log.Debug("Rejected photo upload", "contentType", contentType)
		writeJSON(w, http.StatusUnsupportedMediaType, ErrorResponse{Error: msgPhotoUnsupported})
		return
	}

	url, err := h.photos.Put(r.Context(), uuid.NewString()+ext, contentType, data)
	if err != nil {
		h.log.Error("Failed to store photo", "err", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: msgPhotoFailed})
		return
	}

	writeJSON(w, http.StatusOK, PhotoResponse{URL: url})
}

// readPhoto extracts the uploaded file. The returned RequestError carries the
// client-facing message.
func readPhoto(w http.ResponseWriter, r *http.Request) ([]byte, *RequestError) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+multipartOverhead)

	file, _, err := r.FormFile(photoFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &RequestError{StatusCode: http.StatusRequestEntityTooLarge, Err: errors.New(msgPhotoTooLarge)}
		}
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: errors.New(msgPhotoMissing)}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: errors.New(msgPhotoMissing)}
	}
	if len(data) > maxPhotoSize {
		return nil, &RequestError{StatusCode: http.StatusRequestEntityTooLarge, Err: errors.New(msgPhotoTooLarge)}
	}
	if len(data) == 0 {
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: errors.New(msgPhotoMissing)}
	}
	return data, nil
}
