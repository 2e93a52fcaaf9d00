package handlers

import (
	"net/http"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients and their documents.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers all client-related routes.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)

		clients.GET("/:id/documents", h.listDocuments)
		clients.POST("/:id/documents", h.attachDocument)
		clients.DELETE("/:id/documents/:documentID", h.detachDocument)
	}
}

// listClients godoc
// @Summary List clients
// @Description Lists the caller's clients, most recent first, with document counts.
// @Tags clients
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.ClientResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	clients, docCounts, err := h.clientService.ListClients(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i], docCounts[clients[i].ClientID])
	}
	c.JSON(http.StatusOK, dto.OKList(responses, len(responses)))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.Envelope{data=dto.ClientResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	docs, err := h.clientService.ListDocuments(c.Request.Context(), userID, client.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToClientResponse(client, len(docs))))
}

// createClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.SaveClientRequest true "Client details"
// @Success 201 {object} dto.Envelope{data=dto.ClientResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or tax identifier"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage(dto.ToClientResponse(client, 0), "Cliente cadastrado com sucesso"))
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.SaveClientRequest true "Client details"
// @Success 200 {object} dto.Envelope{data=dto.ClientResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.SaveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Formato de requisição inválido"))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	docs, err := h.clientService.ListDocuments(c.Request.Context(), userID, client.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(dto.ToClientResponse(client, len(docs)), "Cliente atualizado com sucesso"))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes a client. Rejected while the client has active loans.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse "Client has active loans"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(nil, "Cliente excluído com sucesso"))
}

// listDocuments godoc
// @Summary List client documents
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.Envelope{data=[]dto.DocumentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/documents [get]
func (h *clientHandler) listDocuments(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	docs, err := h.clientService.ListDocuments(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKList(dto.ToDocumentResponses(docs), len(docs)))
}

// attachDocument godoc
// @Summary Attach a document to a client
// @Description Registers upload metadata issued by the external upload widget.
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param document body dto.AttachDocumentRequest true "Document metadata"
// @Success 201 {object} dto.Envelope{data=dto.DocumentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/documents [post]
func (h *clientHandler) attachDocument(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	var req dto.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Metadados do documento inválidos"))
		return
	}

	doc, err := h.clientService.AttachDocument(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKMessage(dto.ToDocumentResponse(doc), "Documento anexado com sucesso"))
}

// detachDocument godoc
// @Summary Detach a document from a client
// @Description Removes the document metadata; the stored file bytes are untouched.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/documents/{documentID} [delete]
func (h *clientHandler) detachDocument(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Não autorizado"))
		return
	}

	if err := h.clientService.DetachDocument(c.Request.Context(), userID, c.Param("id"), c.Param("documentID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage(nil, "Documento removido com sucesso"))
}
