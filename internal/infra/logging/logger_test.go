package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLevel(t *testing.T) {
	Init("parking-test", "debug")
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	Init("parking-test", "loud")
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	Logger.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() { Logger.SetOutput(logrus.StandardLogger().Out) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/gone", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String(), "successful requests log at debug")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gone", nil))
	assert.Contains(t, buf.String(), "request rejected")
	assert.Contains(t, buf.String(), "status=404")
}
