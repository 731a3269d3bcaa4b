package tickets

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/pagination"
	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	GetMyTicket(c *gin.Context)
	ListMyTickets(c *gin.Context)
	VerifyTicket(c *gin.Context)
	CheckIn(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetMyTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticket, err := ctrl.service.GetMyTicket(c.Request.Context(), userID, c.Param("ticketCode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket retrieved successfully", ticket)
}

func (ctrl *controller) ListMyTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.ListMyTickets(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tickets retrieved successfully", page)
}

func (ctrl *controller) VerifyTicket(c *gin.Context) {
	result, err := ctrl.service.VerifyTicket(c.Request.Context(), c.Param("ticketCode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket verified", result)
}

func (ctrl *controller) CheckIn(c *gin.Context) {
	ticket, err := ctrl.service.CheckIn(c.Request.Context(), c.Param("ticketCode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket checked in successfully", ticket)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	return userID, true
}
