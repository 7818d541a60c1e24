package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalassist-backend/internal/shared/storage/object"
	"legalassist-backend/internal/shared/storage/object/local"
)

const testUserHeader = "X-Test-User"

func newDocumentsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(local.New(t.TempDir()), NewMemoryRepo(), Limits{MaxUploadBytes: 1024}))
	router := gin.New()
	h.RegisterFileRoutes(router)
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("userId", c.GetHeader(testUserHeader))
		c.Next()
	})
	h.RegisterRoutes(api)
	return router
}

func multipartUpload(t *testing.T, fileName, contentType, body, title string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	if title != "" {
		require.NoError(t, writer.WriteField("title", title))
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func do(router *gin.Engine, method, path, user string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(testUserHeader, user)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadGetListDelete(t *testing.T) {
	router := newDocumentsRouter(t)

	body, ct := multipartUpload(t, "lease.txt", "text/plain", "Lease terms", "Office Lease")
	resp := do(router, http.MethodPost, "/api/files", "u1", body, ct)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var created DocumentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Office Lease", created.Title)
	assert.Equal(t, "Lease terms", created.ExtractedText)
	assert.Equal(t, "u1", created.UserID)
	assert.NotContains(t, resp.Body.String(), "extractionFailed")

	resp = do(router, http.MethodGet, "/api/files/"+created.ID, "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var fetched DocumentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	resp = do(router, http.MethodGet, "/api/files/"+created.ID, "u2", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = do(router, http.MethodGet, "/api/files", "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var listed []DocumentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	resp = do(router, http.MethodDelete, "/api/files/"+created.ID, "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Document deleted successfully"}`, resp.Body.String())

	resp = do(router, http.MethodGet, "/api/files", "u1", nil, "")
	assert.JSONEq(t, `[]`, resp.Body.String())

	resp = do(router, http.MethodDelete, "/api/files/"+created.ID, "u1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUploadWithoutFile(t *testing.T) {
	router := newDocumentsRouter(t)
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	require.NoError(t, writer.WriteField("title", "nothing"))
	require.NoError(t, writer.Close())

	resp := do(router, http.MethodPost, "/api/files", "u1", buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No file uploaded")
}

func TestUploadUnsupportedType(t *testing.T) {
	router := newDocumentsRouter(t)

	body, ct := multipartUpload(t, "pic.png", "image/png", "PNG", "")
	resp := do(router, http.MethodPost, "/api/files", "u1", body, ct)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)

	resp = do(router, http.MethodGet, "/api/files", "u1", nil, "")
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestUploadTooLargeIsRejected(t *testing.T) {
	router := newDocumentsRouter(t)

	body, ct := multipartUpload(t, "big.txt", "text/plain", string(bytes.Repeat([]byte("a"), 2048)), "")
	resp := do(router, http.MethodPost, "/api/files", "u1", body, ct)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestCreateSampleRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(local.New(t.TempDir()), NewMemoryRepo(), Limits{}))
	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) { c.Set("userId", "u1"); c.Next() })
	h.RegisterRoutes(api)

	resp := do(router, http.MethodPost, "/api/files/sample", "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var doc DocumentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.Equal(t, "Sample Professional Services Agreement", doc.Title)
	assert.Equal(t, "text/plain", doc.MimeType)
}

func TestUploadedFileIsServed(t *testing.T) {
	router := newDocumentsRouter(t)

	body, ct := multipartUpload(t, "lease.txt", "text/plain", "Lease terms", "")
	resp := do(router, http.MethodPost, "/api/files", "u1", body, ct)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var created DocumentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = do(router, http.MethodGet, "/uploads/"+created.FileName, "", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Lease terms", resp.Body.String())
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))

	resp = do(router, http.MethodDelete, "/api/files/"+created.ID, "u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(router, http.MethodGet, "/uploads/"+created.FileName, "", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "not_found")
}

type missingStore struct {
	object.ObjectStore
}

func (missingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, object.ErrNotFound
}

type brokenStore struct {
	object.ObjectStore
}

func (brokenStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("bucket unreachable")
}

func TestServeFileMapsStoreErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		store object.ObjectStore
		want  int
	}{
		{missingStore{}, http.StatusNotFound},
		{brokenStore{}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		router := gin.New()
		NewHandler(NewService(tc.store, NewMemoryRepo(), Limits{})).RegisterFileRoutes(router)

		resp := do(router, http.MethodGet, "/uploads/1700000000000-gone.pdf", "", nil, "")
		assert.Equal(t, tc.want, resp.Code)
	}
}

func TestUploadByDeletedUserIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(local.New(t.TempDir()), NewMemoryRepo(), Limits{})
	svc.Owners = fakeOwners{}
	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) { c.Set("userId", c.GetHeader(testUserHeader)); c.Next() })
	NewHandler(svc).RegisterRoutes(api)

	body, ct := multipartUpload(t, "a.txt", "text/plain", "a", "")
	resp := do(router, http.MethodPost, "/api/files", "ghost", body, ct)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "User no longer exists")
}
