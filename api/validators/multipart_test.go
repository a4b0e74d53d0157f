package validators

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

type itemPayload struct {
	Quantity int    `json:"quantity" validate:"gt=0"`
	Notes    string `json:"notes"`
}

func multipartRequest(t *testing.T, build func(w *multipart.Writer)) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func writeImagePart(t *testing.T, w *multipart.Writer, field, filename string, data []byte) {
	t.Helper()

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
}

func TestReadFileField(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		writeImagePart(t, w, "picture", "logo.png", []byte("pngbytes"))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	upload, err := ReadFileField(req, "picture", 1<<20)
	require.NoError(t, err)
	require.NotNil(t, upload)
	assert.Equal(t, "logo.png", upload.Filename)
	assert.Equal(t, "image/png", upload.ContentType)
	assert.Equal(t, []byte("pngbytes"), upload.Data)
}

func TestReadFileFieldAbsentIsNil(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("product", `{}`))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	upload, err := ReadFileField(req, "picture", 1<<20)
	require.NoError(t, err)
	assert.Nil(t, upload)
}

func TestReadFileFieldRejectsOversize(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		writeImagePart(t, w, "picture", "big.png", bytes.Repeat([]byte("x"), 64))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	_, err := ReadFileField(req, "picture", 16)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestReadFileFieldRejectsNonImage(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		part, err := w.CreateFormFile("picture", "notes.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("plain text"))
		require.NoError(t, err)
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	_, err := ReadFileField(req, "picture", 1<<20)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONFieldStruct(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("item", `{"quantity":3,"notes":"rush"}`))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	var payload itemPayload
	require.NoError(t, DecodeJSONField(req, "item", &payload))
	assert.Equal(t, 3, payload.Quantity)
	assert.Equal(t, "rush", payload.Notes)
}

func TestDecodeJSONFieldValidatesSliceElements(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("items", `[{"quantity":2},{"quantity":0}]`))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	var payload []itemPayload
	err := DecodeJSONField(req, "items", &payload)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONFieldMissing(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("other", `{}`))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	var payload itemPayload
	err := DecodeJSONField(req, "item", &payload)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONFieldMalformedJSON(t *testing.T) {
	body, contentType := multipartRequest(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("item", `{"quantity":`))
	})
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, ParseMultipart(req, 1<<20))

	var payload itemPayload
	err := DecodeJSONField(req, "item", &payload)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
