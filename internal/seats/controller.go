package seats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	BulkCreateSeats(c *gin.Context)
	GetSeat(c *gin.Context)
	ListForEvent(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) BulkCreateSeats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var req BulkCreateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	created, err := ctrl.service.BulkCreateSeats(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Seats created successfully", created)
}

func (ctrl *controller) GetSeat(c *gin.Context) {
	seatID, err := uuid.Parse(c.Param("seatId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid seat ID", nil, err.Error())
		return
	}

	seat, err := ctrl.service.GetSeat(c.Request.Context(), seatID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Seat retrieved successfully", seat)
}

func (ctrl *controller) ListForEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.ListForEvent(c.Request.Context(), eventID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Seats retrieved successfully", list)
}
