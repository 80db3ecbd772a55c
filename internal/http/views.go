package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-registry/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// formFields are read from submitted forms; anything else is ignored.
var formFields = append([]string{domain.FieldID}, domain.RequiredFields...)

func (h *Handler) registerViews(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/menu")
	})
	router.GET("/menu", h.menu)
	router.GET("/table", h.table)
	router.GET("/form", h.form)
	router.POST("/form", h.submitForm)
	router.GET("/delete/:id", h.deleteFromView)
}

func (h *Handler) menu(c *gin.Context) {
	c.HTML(http.StatusOK, "menu.html", gin.H{"Flash": h.flash.pop(c)})
}

func (h *Handler) table(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.viewError(c, err)
		return
	}
	c.HTML(http.StatusOK, "table.html", gin.H{"Users": users})
}

func (h *Handler) form(c *gin.Context) {
	var user *domain.User
	if id := c.Query("id"); id != "" {
		found, err := h.users.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			user = found
		case !domain.IsNotFound(err):
			h.viewError(c, err)
			return
		}
	}
	c.HTML(http.StatusOK, "form.html", gin.H{"User": user})
}

func (h *Handler) submitForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	data := domain.Record{}
	for _, field := range formFields {
		if values, ok := c.Request.PostForm[field]; ok && len(values) > 0 {
			data[field] = values[0]
		}
	}

	if _, err := h.users.Save(c.Request.Context(), data); err != nil {
		if !domain.IsValidation(err) {
			h.viewError(c, err)
			return
		}
		if ferr := h.flash.set(c, err.Error()); ferr != nil {
			h.logger.Warnf("set flash message: %v", ferr)
		}
		c.Redirect(http.StatusFound, "/menu")
		return
	}
	c.Redirect(http.StatusFound, "/table")
}

func (h *Handler) deleteFromView(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil && !domain.IsNotFound(err) {
		h.viewError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/table")
}

func (h *Handler) viewError(c *gin.Context, err error) {
	h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "internal error")
}
