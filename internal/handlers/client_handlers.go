package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

func parseClientID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	clientID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || clientID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "ID de cliente inválido", ""))
		return 0, false
	}
	return clientID, true
}

func respondClientNotFound(c *gin.Context) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cliente no encontrado", ""))
}

// CreateClient handles POST /clientes.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateClient: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Nombre, teléfono y tipo son obligatorios")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrClientValidation) {
			utils.RespondValidationFailed(c, "Nombre, teléfono y tipo son obligatorios")
			return
		}
		utils.LogError(err, "CreateClient: Error from clientService.CreateClient")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al registrar cliente", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cliente registrado correctamente", "id": client.ID})
}

// GetClients handles GET /clientes.
func (h *ClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientService.GetClients(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al obtener clientes", "").WithCause(err))
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientByID handles GET /clientes/:id.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			respondClientNotFound(c)
			return
		}
		utils.LogError(err, "GetClientByID: Error from clientService.GetClientByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al obtener cliente", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles PUT /clientes/:id.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	var req services.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateClient: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Nombre, teléfono y tipo son obligatorios")
		return
	}

	if err := h.clientService.UpdateClient(c.Request.Context(), clientID, req); err != nil {
		switch {
		case errors.Is(err, services.ErrClientValidation):
			utils.RespondValidationFailed(c, "Nombre, teléfono y tipo son obligatorios")
		case errors.Is(err, services.ErrClientNotFound):
			respondClientNotFound(c)
		default:
			utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al actualizar cliente", "").WithCause(err))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cliente actualizado correctamente"})
}

// DeleteClient handles DELETE /clientes/:id; the client's payments go with it.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			respondClientNotFound(c)
			return
		}
		utils.LogError(err, "DeleteClient: Error from clientService.DeleteClient")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al eliminar cliente", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cliente eliminado correctamente"})
}

// GetClientPayments handles GET /clientes/:id/pagos.
func (h *ClientHandler) GetClientPayments(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	payments, err := h.clientService.GetClientPayments(c.Request.Context(), clientID)
	if err != nil {
		utils.LogError(err, "GetClientPayments: Error from clientService.GetClientPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al obtener pagos", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetOverdueClients handles GET /clientes-morosos.
func (h *ClientHandler) GetOverdueClients(c *gin.Context) {
	overdue, err := h.clientService.GetOverdueClients(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetOverdueClients: Error from clientService.GetOverdueClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al obtener clientes morosos", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, overdue)
}

// GetReminders handles GET /recordatorios.
func (h *ClientHandler) GetReminders(c *gin.Context) {
	reminders, err := h.clientService.GetReminders(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetReminders: Error from clientService.GetReminders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al obtener recordatorios", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, reminders)
}
