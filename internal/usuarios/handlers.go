package usuarios

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UsuarioHandlers provides HTTP handlers for usuario operations
type UsuarioHandlers struct {
	service UsuarioService
	logger  *zap.Logger
}

// NewUsuarioHandlers creates new usuario handlers
func NewUsuarioHandlers(service UsuarioService, logger *zap.Logger) *UsuarioHandlers {
	return &UsuarioHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers all usuario routes
func (h *UsuarioHandlers) RegisterRoutes(router *gin.Engine) {
	usuarios := router.Group("/usuarios")
	{
		usuarios.GET("", h.List)
		usuarios.GET("/:id", h.Get)
		usuarios.POST("", h.Create)
		usuarios.PUT("/:id", h.Update)
		usuarios.DELETE("/:id", h.Delete)
	}
}

func (h *UsuarioHandlers) List(c *gin.Context) {
	responses, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

func (h *UsuarioHandlers) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *UsuarioHandlers) Create(c *gin.Context) {
	var req CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido."})
		return
	}

	response, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/usuarios/%s", response.ID))
	c.JSON(http.StatusCreated, response)
}

func (h *UsuarioHandlers) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo da requisição inválido."})
		return
	}

	response, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *UsuarioHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the id path parameter. A malformed id cannot reference any
// record, so it reports not found like any other miss.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Usuário com ID %s não encontrado.", c.Param("id"))})
		return uuid.Nil, false
	}
	return id, true
}

// fail translates the error taxonomy into transport codes. Business meaning
// is decided by the service; this only maps it. Validation failures are
// returned as structured data and never logged as errors.
func (h *UsuarioHandlers) fail(c *gin.Context, err error) {
	var ue *UsuarioError
	if errors.As(err, &ue) {
		switch ue.Type {
		case UsuarioErrorTypeValidationFailed:
			c.JSON(http.StatusBadRequest, gin.H{"errors": ue.Violations})
			return
		case UsuarioErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": ue.Message})
			return
		case UsuarioErrorTypeEmailConflict:
			c.JSON(http.StatusConflict, gin.H{"message": ue.Message})
			return
		}
	}

	h.logger.Error("Unexpected failure handling usuario request",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor."})
}
