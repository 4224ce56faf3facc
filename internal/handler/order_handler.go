package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /order のAPI（作成は本人、一覧とステータスは管理者）
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	owner := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.OwnerGuard(userRepo),
	}
	admin := append(append([]echo.MiddlewareFunc{}, owner...), middleware.AdminRoleGuard())

	e.POST("/order/create/:userId", h.create, owner...)
	e.GET("/order/list/:userId", h.list, admin...)
	e.GET("/order/status-values/:userId", h.statusValues, admin...)
	e.PUT("/order/:orderId/status/:userId", h.updateStatus, admin...)
}

type createOrderRequest struct {
	Order struct {
		Products      []usecase.OrderLineInput `json:"products"`
		TransactionID string                   `json:"transaction_id"`
		Amount        float64                  `json:"amount"`
		Address       string                   `json:"address"`
	} `json:"order"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) create(c echo.Context) error {
	profile, ok := getProfileFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), profile.ID, usecase.CreateOrderInput{
		Products:      req.Order.Products,
		TransactionID: req.Order.TransactionID,
		Amount:        req.Order.Amount,
		Address:       req.Order.Address,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) statusValues(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.StatusValues())
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	profile, ok := getProfileFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order not found"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), profile.ID, orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
