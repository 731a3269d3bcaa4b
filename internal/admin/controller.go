package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/orders"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	GetDashboard(c *gin.Context)
	GetEventStats(c *gin.Context)
	ListAllOrders(c *gin.Context)
	UpdateOrderStatus(c *gin.Context)
	ListUsers(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboard(c *gin.Context) {
	stats, err := ctrl.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (ctrl *controller) GetEventStats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	stats, err := ctrl.service.GetEventStats(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Event stats retrieved successfully", stats)
}

func (ctrl *controller) ListAllOrders(c *gin.Context) {
	var query orders.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.ListAllOrders(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Orders retrieved successfully", page)
}

func (ctrl *controller) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	order, err := ctrl.service.UpdateOrderStatus(c.Request.Context(), orderID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order status updated successfully", order)
}

func (ctrl *controller) ListUsers(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved successfully", page)
}
