package utils_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/mihirnarula/consultigo-api/internal/utils"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, utils.APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return resp.StatusCode, body
}

func TestSendSuccessDefaults(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", map[string]string{"k": "v"})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.True(t, body.Success)
	require.Equal(t, "success", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendSuccessWithStatus(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "created", nil)
	})

	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, body.Success)
	require.Equal(t, "created", body.Message)
}

func TestSendError(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "missing")
	})

	require.Equal(t, fiber.StatusNotFound, status)
	require.False(t, body.Success)
	require.Equal(t, "missing", body.Message)
}
