package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/request"
	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/response"
	"github.com/gabadev/furduncinho047-api/internal/api/middleware"
	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/service"
)

type PaymentService interface {
	ListPendingPayments(ctx context.Context) ([]domain.TicketView, error)
	ApprovePayment(ctx context.Context, paymentID, adminID uint) error
	RejectPayment(ctx context.Context, paymentID uint, reason string) error
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleListPending godoc
// @Summary      List payments awaiting review, joined with ticket and buyer
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.TicketView
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/payments [get]
// @Security     Bearer
func (h *PaymentHandler) HandleListPending(ctx *gin.Context) {
	views, err := h.svc.ListPendingPayments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPending -> h.svc.ListPendingPayments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, views)
}

// HandleApprovePayment godoc
// @Summary      Approve a pending payment, issuing the ticket's QR code
// @Description  Approving a payment that has already been processed returns
// @Description  404; that is the expected outcome when two admins race.
// @Tags         admin
// @Produce      json
// @Param        paymentID   path      int  true  "payment ID"
// @Success      200  {object}  response.AckResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/payments/{paymentID}/approve [post]
// @Security     Bearer
func (h *PaymentHandler) HandleApprovePayment(ctx *gin.Context) {
	paymentID, err := strconv.ParseUint(ctx.Param("paymentID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid payment ID")))

		return
	}

	err = h.svc.ApprovePayment(ctx.Request.Context(), uint(paymentID), middleware.GetUserID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound), errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("pending payment", "ID", paymentID))
		case errors.Is(err, service.ErrUploadFailed):
			response.RenderErr(ctx, response.ErrBadGateway(err))
		default:
			err = fmt.Errorf("v1.HandleApprovePayment -> h.svc.ApprovePayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.Ack())
}

// HandleRejectPayment godoc
// @Summary      Reject a pending payment with an optional reason
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        paymentID   path      int  true  "payment ID"
// @Param        request     body      request.RejectPaymentRequest false "request body"
// @Success      200  {object}  response.AckResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/payments/{paymentID}/reject [post]
// @Security     Bearer
func (h *PaymentHandler) HandleRejectPayment(ctx *gin.Context) {
	paymentID, err := strconv.ParseUint(ctx.Param("paymentID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid payment ID")))

		return
	}

	var req request.RejectPaymentRequest
	if ctx.Request.ContentLength > 0 {
		if err = ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		if err = req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
	}

	err = h.svc.RejectPayment(ctx.Request.Context(), uint(paymentID), req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("pending payment", "ID", paymentID))

			return
		}

		err = fmt.Errorf("v1.HandleRejectPayment -> h.svc.RejectPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Ack())
}
