package fiberx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return err })
	return app
}

func call(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	registry := errx.NewRegistry("FIBERX_TEST")
	notFound := registry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   any
	}{
		{"typed", registry.New(notFound), http.StatusNotFound, "FIBERX_TEST_MISSING"},
		{"wrapped typed", errx.Wrap(registry.New(notFound), "lookup", errx.TypeInternal), http.StatusNotFound, "FIBERX_TEST_MISSING"},
		{"fiber", fiber.NewError(http.StatusTeapot, "short and stout"), http.StatusTeapot, float64(http.StatusTeapot)},
		{"plain", errors.New("kaboom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, newApp(tt.err), "/boom")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	status, _ := call(t, newApp(nil), "/nowhere")
	assert.Equal(t, http.StatusNotFound, status)
}
