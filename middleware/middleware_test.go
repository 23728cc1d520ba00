package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subratpandeyy/The-Wedding-Shades/testutils"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	utils.Logger.SetOutput(io.Discard)

	exitCode := m.Run()

	utils.Logger.SetOutput(os.Stdout)
	os.Exit(exitCode)
}

func guardedRouter(secret string) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/posts", AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func postWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/posts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAdminAuth_OpenWithoutSecret(t *testing.T) {
	resp := postWithAuth(guardedRouter(""), "")
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	resp := postWithAuth(guardedRouter("s3cret"), "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.JSONEq(t, `{"error":"Authorization header missing"}`, resp.Body.String())
}

func TestAdminAuth_ValidAdminToken(t *testing.T) {
	token, err := utils.GenerateJWT([]byte("s3cret"), "studio", utils.AdminRole, time.Hour)
	require.NoError(t, err)

	resp := postWithAuth(guardedRouter("s3cret"), "Bearer "+token)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.JSONEq(t, `{"subject":"studio"}`, resp.Body.String())

	// a bare token is accepted too
	resp = postWithAuth(guardedRouter("s3cret"), token)
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestAdminAuth_WrongRole(t *testing.T) {
	token, err := utils.GenerateJWT([]byte("s3cret"), "visitor", "USER", time.Hour)
	require.NoError(t, err)

	resp := postWithAuth(guardedRouter("s3cret"), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminAuth_BadToken(t *testing.T) {
	token, err := utils.GenerateJWT([]byte("other"), "studio", utils.AdminRole, time.Hour)
	require.NoError(t, err)

	resp := postWithAuth(guardedRouter("s3cret"), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, resp.Body.String())

	resp = postWithAuth(guardedRouter("s3cret"), "Bearer a b")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(Timeout(5 * time.Second))
	r.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"ok": ok, "soon": time.Until(deadline) <= 5*time.Second})
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.JSONEq(t, `{"ok":true,"soon":true}`, resp.Body.String())
}

func TestTimeout_ExpiredContext(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(Timeout(time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		<-c.Request.Context().Done()
		c.String(http.StatusOK, c.Request.Context().Err().Error())
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, context.DeadlineExceeded.Error(), resp.Body.String())
}

func TestTimeout_Disabled(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(Timeout(0))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"ok": ok})
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.JSONEq(t, `{"ok":false}`, resp.Body.String())
}

func TestRecovery(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic("database handle is nil")
	})

	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, resp.Body.String())
}

func TestBodyLimit(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{"tooLarge": utils.IsBodyTooLarge(err)})
	})

	for body, want := range map[string]string{
		"short":            `{"tooLarge":false}`,
		"much too long...": `{"tooLarge":true}`,
	} {
		req, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		assert.JSONEq(t, want, resp.Body.String(), body)
	}
}
