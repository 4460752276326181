package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenpass/greenpass-support/internal/models"
	pgrepo "github.com/greenpass/greenpass-support/internal/repositories/postgres"
	"github.com/greenpass/greenpass-support/internal/utils"
)

// FAQHandler exposes the knowledge base read-only, for the widget's help tab.
type FAQHandler struct {
	faqs pgrepo.FAQRepo
}

func NewFAQHandler(faqs pgrepo.FAQRepo) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

func (h *FAQHandler) List(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	lang := models.Language(c.Query("lang"))
	if lang != models.LangVI {
		lang = models.LangEN
	}

	rows, err := h.faqs.ListByLang(c.Request.Context(), lang)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "FAQHandler.List", "failed to list faq entries", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lang":    lang,
		"entries": rows,
	})
}
