package orders

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	CreateOrder(c *gin.Context)
	GetOrder(c *gin.Context)
	GetOrderByNumber(c *gin.Context)
	ListMyOrders(c *gin.Context)
	CancelOrder(c *gin.Context)
	ConfirmPayment(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	order, err := ctrl.service.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Order created successfully", order)
}

func (ctrl *controller) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	order, err := ctrl.service.GetMyOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order retrieved successfully", order)
}

func (ctrl *controller) GetOrderByNumber(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := ctrl.service.GetMyOrderByNumber(c.Request.Context(), userID, c.Param("orderNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order retrieved successfully", order)
}

func (ctrl *controller) ListMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.ListMyOrders(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Orders retrieved successfully", page)
}

func (ctrl *controller) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	if err := ctrl.service.CancelMyOrder(c.Request.Context(), userID, orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Order cancelled successfully", nil)
}

func (ctrl *controller) ConfirmPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	order, err := ctrl.service.ConfirmMyPayment(c.Request.Context(), userID, orderID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payment confirmed successfully", order)
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
