package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		err        error
		wantBody   ErrorResponse
		wantFlat   string
		wantStatus int
	}{
		{
			name:       "validation lists every field",
			status:     fiber.StatusBadRequest,
			err:        NewValidationError("Status is required", "Skills is required"),
			wantStatus: fiber.StatusBadRequest,
			wantBody: ErrorResponse{
				Code:   CodeValidation,
				Errors: []ErrorMessage{{Msg: "Status is required"}, {Msg: "Skills is required"}},
			},
		},
		{
			name:       "not found",
			status:     fiber.StatusBadRequest,
			err:        NewNotFoundError("Profile not found"),
			wantStatus: fiber.StatusBadRequest,
			wantBody: ErrorResponse{
				Code:   CodeNotFound,
				Errors: []ErrorMessage{{Msg: "Profile not found"}},
			},
		},
		{
			name:       "internal collapses to flat text",
			status:     fiber.StatusInternalServerError,
			err:        NewInternalError(errors.New("pq: connection refused")),
			wantStatus: fiber.StatusInternalServerError,
			wantFlat:   ServerErrorBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, tt.status, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			if tt.wantFlat != "" {
				assert.Equal(t, tt.wantFlat, string(body))
				assert.NotContains(t, string(body), "connection refused")
				return
			}
			var got ErrorResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestAppError_UnwrapAndIsCode(t *testing.T) {
	cause := errors.New("boom")
	err := NewUpstreamError("github unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeUpstream))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(cause, CodeUpstream))
	assert.Equal(t, "github unavailable: boom", err.Error())
}
