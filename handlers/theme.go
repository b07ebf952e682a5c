package handlers

import (
	"context"
	"net/http"

	"bookingflow/models"

	"github.com/gin-gonic/gin"
)

type ThemeProvider interface {
	ClientTheme(ctx context.Context, email string) models.Theme
}

type ThemeHandler struct {
	Themes ThemeProvider
}

func NewThemeHandler(themes ThemeProvider) *ThemeHandler {
	return &ThemeHandler{Themes: themes}
}

// GetClientTheme handles GET /api/widget/themes/:email. It always answers
// with a theme; the default one stands in for missing or broken themes.
func (h *ThemeHandler) GetClientTheme(c *gin.Context) {
	c.JSON(http.StatusOK, h.Themes.ClientTheme(c.Request.Context(), c.Param("email")))
}
