package tickettypes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	CreateTicketType(c *gin.Context)
	GetTicketType(c *gin.Context)
	ListForEvent(c *gin.Context)
	UpdateTicketType(c *gin.Context)
	DeleteTicketType(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTicketType(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var req CreateTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tt, err := ctrl.service.CreateTicketType(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Ticket type created successfully", tt)
}

func (ctrl *controller) GetTicketType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("ticketTypeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket type ID", nil, err.Error())
		return
	}

	tt, err := ctrl.service.GetTicketType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket type retrieved successfully", tt)
}

func (ctrl *controller) ListForEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	// Admins can see inactive and sold out types.
	includeInactive := c.Query("include_inactive") == "true" && c.GetString("user_role") == "admin"

	list, err := ctrl.service.ListForEvent(c.Request.Context(), eventID, includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket types retrieved successfully", list)
}

func (ctrl *controller) UpdateTicketType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("ticketTypeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket type ID", nil, err.Error())
		return
	}

	var req UpdateTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tt, err := ctrl.service.UpdateTicketType(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket type updated successfully", tt)
}

func (ctrl *controller) DeleteTicketType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("ticketTypeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket type ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteTicketType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket type deleted successfully", nil)
}
