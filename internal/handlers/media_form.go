package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/storage"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// uploadFormFile streams a multipart file field to the media store under a
// freshly generated key. A missing optional field yields a zero result.
func uploadFormFile(r *http.Request, media MediaStore, field, prefix string, required bool) (storage.UploadResult, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			if required {
				return storage.UploadResult{}, apierr.Validation(field + " file is required")
			}
			return storage.UploadResult{}, nil
		}
		return storage.UploadResult{}, apierr.Validation("could not read " + field + " file").WithCause(err)
	}
	defer file.Close()

	key := prefix + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	result, err := media.Upload(r.Context(), key, header.Header.Get("Content-Type"), file)
	if err != nil {
		return storage.UploadResult{}, apierr.Upload("could not store " + field).WithCause(err)
	}
	return result, nil
}
