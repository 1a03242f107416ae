package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentlify/internal/model"
	"rentlify/internal/orderapi"
	"rentlify/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_Create(t *testing.T) {
	mockService := new(MockSessionService)
	handler := NewSessionHandler(mockService, zerolog.Nop())

	mockService.On("Create", mock.Anything).Return(testSessionID, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testSessionID, resp.SessionID)
}

func TestSessionHandler_Login(t *testing.T) {
	user := &model.User{ID: "U1", Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
	creds := service.LoginRequest{Email: "asha@example.com", Password: "secret"}

	tests := []struct {
		name           string
		body           string
		expectService  bool
		mockReturn     *model.User
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			body:           `{"email":"asha@example.com","password":"secret"}`,
			expectService:  true,
			mockReturn:     user,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Wrong credentials",
			body:           `{"email":"asha@example.com","password":"secret"}`,
			expectService:  true,
			mockError:      &orderapi.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeOrderFailed,
		},
		{
			name:           "Order API down",
			body:           `{"email":"asha@example.com","password":"secret"}`,
			expectService:  true,
			mockError:      &orderapi.APIError{StatusCode: http.StatusServiceUnavailable},
			expectedStatus: http.StatusBadGateway,
			expectedCode:   model.ErrCodeUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSessionService)
			handler := NewSessionHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("Login", mock.Anything, testSessionID, creds).Return(tt.mockReturn, tt.mockError)
			}

			req := withSession(httptest.NewRequest(http.MethodPost, "/api/sessions/login", strings.NewReader(tt.body)))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockSessionService)
		handler := NewSessionHandler(mockService, zerolog.Nop())

		mockService.On("Logout", mock.Anything, testSessionID).Return(nil)

		req := withSession(httptest.NewRequest(http.MethodDelete, "/api/sessions", nil))
		w := httptest.NewRecorder()
		handler.Logout(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Store failure", func(t *testing.T) {
		mockService := new(MockSessionService)
		handler := NewSessionHandler(mockService, zerolog.Nop())

		mockService.On("Logout", mock.Anything, testSessionID).Return(errors.New("store unavailable"))

		req := withSession(httptest.NewRequest(http.MethodDelete, "/api/sessions", nil))
		w := httptest.NewRecorder()
		handler.Logout(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSessionHandler_Contact(t *testing.T) {
	mockService := new(MockSessionService)
	handler := NewSessionHandler(mockService, zerolog.Nop())

	mockService.On("ContactDefaults", mock.Anything, testSessionID).
		Return(model.ContactDefaults{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/sessions/contact", nil))
	w := httptest.NewRecorder()
	handler.Contact(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ContactDefaults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Asha", resp.Name)
	assert.Equal(t, "9876543210", resp.Phone)
}
