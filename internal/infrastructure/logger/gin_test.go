package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs completed request at info", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		r := gin.New()
		r.Use(GinMiddleware(zap.New(core)))
		r.GET("/orders", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := performRequest(r, http.MethodGet, "/orders?status=PARTIAL")

		assert.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "request", entry.Message)
		assert.Equal(t, zapcore.InfoLevel, entry.Level)

		fields := entry.ContextMap()
		assert.Equal(t, "/orders", fields["path"])
		assert.Equal(t, "status=PARTIAL", fields["query"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("client error logs at warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		r := gin.New()
		r.Use(GinMiddleware(zap.New(core)))
		r.POST("/payments", func(c *gin.Context) {
			c.Status(http.StatusUnprocessableEntity)
		})

		performRequest(r, http.MethodPost, "/payments")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("server error logs at error", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		r := gin.New()
		r.Use(GinMiddleware(zap.New(core)))
		r.GET("/boom", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		performRequest(r, http.MethodGet, "/boom")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("handlers get a request-scoped logger", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		r := gin.New()
		r.Use(GinMiddleware(zap.New(core)))
		r.GET("/receipts", func(c *gin.Context) {
			GetGinLogger(c).Info("reception recorded")
			c.Status(http.StatusCreated)
		})

		performRequest(r, http.MethodGet, "/receipts")

		require.Equal(t, 2, logs.Len())
		assert.Equal(t, "reception recorded", logs.All()[0].Message)
		assert.Equal(t, "/receipts", logs.All()[0].ContextMap()["path"])
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) {
		panic("liquidation blew up")
	})

	w := performRequest(r, http.MethodGet, "/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "handler panic", entry.Message)
	assert.Equal(t, "liquidation blew up", entry.ContextMap()["panic"])
}

func TestGetGinLogger_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.NotPanics(t, func() {
		GetGinLogger(c).Info("nop logger")
	})
}
