package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subratpandeyy/The-Wedding-Shades/media"
	"github.com/subratpandeyy/The-Wedding-Shades/middleware"
	"github.com/subratpandeyy/The-Wedding-Shades/testutils"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

const mib = 1024 * 1024

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	utils.Logger.SetOutput(io.Discard)

	exitCode := m.Run()

	utils.Logger.SetOutput(os.Stdout)
	os.Exit(exitCode)
}

func setupRouter(assets *testutils.FakeAssets, bodyLimit int64) *gin.Engine {
	gateway := media.NewGateway(assets, media.Options{Folder: "blog_images", MaxBytes: 5 * mib, MaxDimension: 1200})
	h := New(gateway)

	r := testutils.SetupTestRouter()
	r.POST("/upload", middleware.BodyLimit(bodyLimit), h.UploadImage)
	return r
}

func imageRequest(t *testing.T, field, contentType string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="photo"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func png(n int) []byte {
	data := make([]byte, n)
	copy(data, "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	return data
}

func TestUploadImage_Success(t *testing.T) {
	assets := testutils.NewFakeAssets()
	r := setupRouter(assets, 6*mib)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, imageRequest(t, "image", "image/png", png(2*mib)))

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "blog_images/img1", body["public_id"])
	assert.Equal(t, "https://res.cloudinary.com/shades/image/upload/v1712345678/blog_images/img1.jpg", body["url"])
}

func TestUploadImage_NoFile(t *testing.T) {
	r := setupRouter(testutils.NewFakeAssets(), 6*mib)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, imageRequest(t, "picture", "image/png", png(64)))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, resp.Body.String())

	req, _ := http.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{"image":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, resp.Body.String())
}

func TestUploadImage_TextFile(t *testing.T) {
	assets := testutils.NewFakeAssets()
	r := setupRouter(assets, 6*mib)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, imageRequest(t, "image", "text/plain", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Only image files (JPEG, PNG, GIF, WebP) are allowed!"}`, resp.Body.String())
	assert.Equal(t, 0, assets.UploadCount())
}

func TestUploadImage_TooLarge(t *testing.T) {
	assets := testutils.NewFakeAssets()
	r := setupRouter(assets, 8*mib)

	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 6*mib-4)...)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, imageRequest(t, "image", "image/jpeg", jpeg))

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	assert.JSONEq(t, `{"error":"File too large. Maximum size is 5MB."}`, resp.Body.String())
	assert.Equal(t, 0, assets.UploadCount())
}

func TestUploadImage_BodyOverLimit(t *testing.T) {
	assets := testutils.NewFakeAssets()
	r := setupRouter(assets, 1*mib)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, imageRequest(t, "image", "image/png", png(2*mib)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	assert.JSONEq(t, `{"error":"File too large. Maximum size is 5MB."}`, resp.Body.String())
	assert.Equal(t, 0, assets.UploadCount())
}

func TestUploadImage_HostFailure(t *testing.T) {
	assets := testutils.NewFakeAssets()
	assets.UploadErr = errors.New("Invalid Signature 3f9a")
	r := setupRouter(assets, 6*mib)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, imageRequest(t, "image", "image/png", png(1024)))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Failed to upload image. Please try again."}`, resp.Body.String())
	assert.Equal(t, 1, assets.UploadCount())
}
