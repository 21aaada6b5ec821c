package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// DocumentHandler serves generated project documents.
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// GenerateInvoice returns the invoice text of a project
func (h *DocumentHandler) GenerateInvoice(c *gin.Context) {
	h.generate(c, services.DocumentInvoice)
}

// GenerateProposal returns the proposal text of a project
func (h *DocumentHandler) GenerateProposal(c *gin.Context) {
	h.generate(c, services.DocumentProposal)
}

func (h *DocumentHandler) generate(c *gin.Context, kind services.DocumentKind) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Generate(c.Request.Context(), user, id, kind)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, "Project not found")
		default:
			respondServiceError(c, err, constants.RedirectDashboard)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}
