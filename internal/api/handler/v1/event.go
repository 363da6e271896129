package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/request"
	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/response"
	"github.com/gabadev/furduncinho047-api/internal/domain"
)

type EventService interface {
	GetSettings(ctx context.Context) (domain.EventSettings, error)
	UpdateSettings(ctx context.Context, settings domain.EventSettings) (domain.EventSettings, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleGetEvent godoc
// @Summary      Public event settings (name, date, location, prices)
// @Tags         event
// @Produce      json
// @Success      200  {object}  domain.EventSettings
// @Failure      500  {object}  response.Err
// @Router       /event [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	settings, err := h.svc.GetSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandleUpdateEvent godoc
// @Summary      Update the event settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateEventSettingsRequest true "request body"
// @Success      200  {object}  domain.EventSettings
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/event [put]
// @Security     Bearer
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	var req request.UpdateEventSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateSettings(ctx.Request.Context(), domain.EventSettings{
		EventName:   req.EventName,
		EventDate:   req.EventDate,
		Location:    req.Location,
		BasePrice:   req.BasePrice,
		CoolerPrice: req.CoolerPrice,
		ServiceFee:  req.ServiceFee,
		AllowCooler: req.AllowCooler,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateSettings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}
