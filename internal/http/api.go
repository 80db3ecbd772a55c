package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-registry/internal/domain"
	"user-registry/internal/service"
)

// Handler wires HTTP routes to the user service.
type Handler struct {
	users  service.UserService
	flash  *flashStore
	logger *logrus.Logger
}

func NewHandler(users service.UserService, sessionSecret string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:  users,
		flash:  newFlashStore([]byte(sessionSecret), 5*time.Minute),
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), corsMiddleware())
	router.SetHTMLTemplate(templates)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	users := router.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	h.registerViews(router)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) createUser(c *gin.Context) {
	var data domain.Record
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	var data domain.Record
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
