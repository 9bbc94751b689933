package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/purchase-order/internal/ports/mocks"
	"github.com/Gunvolt24/purchase-order/pkg/httpx"
)

func newLoggedRouter(t *testing.T, log *mocks.MockLogger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpx.RequestIDMiddleware(), httpx.RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func serve(r *gin.Engine, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	r := newLoggedRouter(t, log)

	log.EXPECT().Infof(gomock.Any(), gomock.Any(), "GET", "/ok", http.StatusOK, gomock.Any(), gomock.Any(), gomock.Any())
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), "GET", "/bad", http.StatusBadRequest, gomock.Any(), gomock.Any(), gomock.Any())
	log.EXPECT().Errorf(gomock.Any(), gomock.Any(), "GET", "/boom", http.StatusInternalServerError, gomock.Any(), gomock.Any(), gomock.Any())

	serve(r, "/ok")
	serve(r, "/bad")
	serve(r, "/boom")
}

func TestRequestLogger_SkipsServiceRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl) // вызовов не ожидается
	r := newLoggedRouter(t, log)

	serve(r, "/ping")
}

func TestRequestLogger_UnknownRouteUsesURLPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	r := newLoggedRouter(t, log)

	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), "GET", "/nope", http.StatusNotFound, gomock.Any(), gomock.Any(), gomock.Any())

	serve(r, "/nope")
}
