package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/response"
	"github.com/gabadev/furduncinho047-api/internal/api/middleware"
	"github.com/gabadev/furduncinho047-api/internal/domain"
)

type AdminService interface {
	GetDashboardStats(ctx context.Context) (domain.DashboardStats, error)
	ResetEvent(ctx context.Context, adminID uint) error
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleDashboard godoc
// @Summary      Ticket, payment and checkin counters for the admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/dashboard [get]
// @Security     Bearer
func (h *AdminHandler) HandleDashboard(ctx *gin.Context) {
	stats, err := h.svc.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.GetDashboardStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleResetEvent godoc
// @Summary      Delete all event data for a new season
// @Description  Removes checkin logs, payments, tickets and every non-admin
// @Description  user, in that order. Irreversible.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.AckResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/reset [post]
// @Security     Bearer
func (h *AdminHandler) HandleResetEvent(ctx *gin.Context) {
	if err := h.svc.ResetEvent(ctx.Request.Context(), middleware.GetUserID(ctx)); err != nil {
		err = fmt.Errorf("v1.HandleResetEvent -> h.svc.ResetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Ack())
}
