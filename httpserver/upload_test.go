package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ruteri/trainer-intake/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "photo.bin")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlePhotoUpload_Disabled(t *testing.T) {
	handler := NewHandler(storage.NewMemoryStore(), nil, nil, testLogger())

	w := httptest.NewRecorder()
	handler.HandlePhotoUpload(w, multipartRequest(t, photoFormField, pngHeader))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, msgUploadsDisabled, decodeError(t, w).Error)
}

func TestHandlePhotoUpload_Success(t *testing.T) {
	photos := new(storage.MockPhotoStore)
	photos.On("Put", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, ".png") && len(name) == 36+len(".png")
	}), "image/png", pngHeader).Return("https://cdn.example.com/x.png", nil).Once()

	handler := NewHandler(storage.NewMemoryStore(), photos, nil, testLogger())

	w := httptest.NewRecorder()
	handler.HandlePhotoUpload(w, multipartRequest(t, photoFormField, pngHeader))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PhotoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example.com/x.png", resp.URL)
	photos.AssertExpectations(t)
}

func TestHandlePhotoUpload_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name:       "not an image",
			req:        func(t *testing.T) *http.Request { return multipartRequest(t, photoFormField, []byte("hello, plain text")) },
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  msgPhotoUnsupported,
		},
		{
			name:       "wrong field",
			req:        func(t *testing.T) *http.Request { return multipartRequest(t, "image", pngHeader) },
			wantStatus: http.StatusBadRequest,
			wantError:  msgPhotoMissing,
		},
		{
			name:       "empty file",
			req:        func(t *testing.T) *http.Request { return multipartRequest(t, photoFormField, nil) },
			wantStatus: http.StatusBadRequest,
			wantError:  msgPhotoMissing,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/uploads/photo", strings.NewReader("{}"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  msgPhotoMissing,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				data := append(append([]byte{}, pngHeader...), make([]byte, maxPhotoSize)...)
				return multipartRequest(t, photoFormField, data)
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  msgPhotoTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photos := new(storage.MockPhotoStore)
			handler := NewHandler(storage.NewMemoryStore(), photos, nil, testLogger())

			w := httptest.NewRecorder()
			handler.HandlePhotoUpload(w, tt.req(t))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeError(t, w).Error)
			photos.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandlePhotoUpload_StoreFailure(t *testing.T) {
	photos := new(storage.MockPhotoStore)
	photos.On("Put", mock.Anything, mock.Anything, "image/png", mock.Anything).Return("", errors.New("access denied"))
	handler := NewHandler(storage.NewMemoryStore(), photos, nil, testLogger())

	w := httptest.NewRecorder()
	handler.HandlePhotoUpload(w, multipartRequest(t, photoFormField, pngHeader))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, msgPhotoFailed, decodeError(t, w).Error)
}
