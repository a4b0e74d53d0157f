package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

// FileUpload is one file field lifted out of a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParseMultipart parses the form with the given total in-memory budget.
func ParseMultipart(r *http.Request, maxBytes int64) error {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// ReadFileField returns the named file field, or nil when absent.
func ReadFileField(r *http.Request, field string, maxBytes int64) (*FileUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("reading file field %q", field))
	}
	defer file.Close()

	if maxBytes > 0 && header.Size > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file %q exceeds the size limit", field))
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("reading file field %q", field))
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file %q exceeds the size limit", field))
	}

	ct := header.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file %q must be an image", field))
	}

	return &FileUpload{
		Filename:    header.Filename,
		ContentType: ct,
		Data:        data,
	}, nil
}

// DecodeJSONField decodes a JSON-encoded text field of a multipart form and
// validates the result.
func DecodeJSONField(r *http.Request, field string, dest any) error {
	raw := r.FormValue(field)
	if raw == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q is required", field))
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid JSON in field %q", field)).
			WithDetails(map[string]any{"error": err.Error()})
	}
	return validateDecoded(dest)
}

// validateDecoded validates a struct, or each element of a slice of structs.
func validateDecoded(dest any) error {
	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return ValidateStruct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Struct {
				if err := ValidateStruct(elem.Interface()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
