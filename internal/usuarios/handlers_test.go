package usuarios

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() (*gin.Engine, *Service) {
	gin.SetMode(gin.TestMode)

	service := NewService(NewMemoryStore())
	handlers := NewUsuarioHandlers(service, zap.NewNop())

	router := gin.New()
	handlers.RegisterRoutes(router)
	return router, service
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateUsuarioEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(router, http.MethodPost, "/usuarios", validCreateRequest())
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.NotEmpty(t, body["id"])
	assert.Equal(t, true, body["ativo"])
	assert.Equal(t, "maria@example.com", body["email"])
	assert.Equal(t, fmt.Sprintf("/usuarios/%s", body["id"]), recorder.Header().Get("Location"))

	// The password never leaves the service
	_, exposed := body["senha"]
	assert.False(t, exposed)
}

func TestCreateUsuarioEndpointValidationFailure(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(router, http.MethodPost, "/usuarios", &CreateUsuarioRequest{Telefone: "11 98765-4321"})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Errors, 5)
}

func TestCreateUsuarioEndpointDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(router, http.MethodPost, "/usuarios", validCreateRequest())
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/usuarios", validCreateRequest())
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCreateUsuarioEndpointMalformedBody(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/usuarios", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetUsuarioEndpoint(t *testing.T) {
	router, service := newTestRouter()

	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodGet, "/usuarios/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body UsuarioResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, created.ID, body.ID)
}

func TestGetUsuarioEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(router, http.MethodGet, "/usuarios/6a2f4ee5-8a74-4b76-9a2f-0f9a1f3cce01", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "não encontrado")
}

// A malformed id cannot reference any record, so the surface reports 404
func TestGetUsuarioEndpointInvalidID(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(router, http.MethodGet, "/usuarios/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListUsuariosEndpoint(t *testing.T) {
	router, service := newTestRouter()

	_, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodGet, "/usuarios", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body []UsuarioResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestUpdateUsuarioEndpoint(t *testing.T) {
	router, service := newTestRouter()

	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodPut, "/usuarios/"+created.ID.String(), &UpdateUsuarioRequest{
		Nome:           "Maria Souza",
		Email:          "maria@example.com",
		DataNascimento: "1990-03-20",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body UsuarioResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Maria Souza", body.Nome)
	assert.NotNil(t, body.DataAtualizacao)
}

func TestUpdateUsuarioEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(router, http.MethodPut, "/usuarios/6a2f4ee5-8a74-4b76-9a2f-0f9a1f3cce01", &UpdateUsuarioRequest{
		Nome:           "Maria Souza",
		Email:          "maria@example.com",
		DataNascimento: "1990-03-20",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteUsuarioEndpoint(t *testing.T) {
	router, service := newTestRouter()

	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodDelete, "/usuarios/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())

	// Idempotence at the result level: the second delete reports not found
	recorder = doRequest(router, http.MethodDelete, "/usuarios/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/usuarios/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
