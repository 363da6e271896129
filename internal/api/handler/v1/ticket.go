package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/request"
	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/response"
	"github.com/gabadev/furduncinho047-api/internal/api/middleware"
	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/service"
)

// Proofs are phone camera shots; anything bigger than this is not a receipt.
const maxProofSize = 10 << 20

type TicketService interface {
	CreateTicket(ctx context.Context, userID uint, hasCooler bool) (domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID, userID uint) (domain.Ticket, error)
	GetMyTickets(ctx context.Context, userID uint) ([]domain.TicketView, error)
	SubmitProof(ctx context.Context, ticketID, userID uint, proof []byte) error
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleCreateTicket godoc
// @Summary      Create a pending ticket for the authenticated user
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateTicketRequest true "request body"
// @Success      201      {object}   response.CreateTicketResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets [post]
// @Security     Bearer
func (h *TicketHandler) HandleCreateTicket(ctx *gin.Context) {
	var req request.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.CreateTicket(ctx.Request.Context(), middleware.GetUserID(ctx), req.HasCooler)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActiveTicketExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrActiveTicketExists))
		case errors.Is(err, service.ErrCoolerUnavailable):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCoolerUnavailable))
		default:
			err = fmt.Errorf("v1.HandleCreateTicket -> h.svc.CreateTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.CreateTicketResponse{
		TicketID: ticket.ID,
		Amount:   ticket.Amount,
	})
}

// HandleGetMyTickets godoc
// @Summary      List the authenticated user's tickets with payment status
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   domain.TicketView
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/mine [get]
// @Security     Bearer
func (h *TicketHandler) HandleGetMyTickets(ctx *gin.Context) {
	views, err := h.svc.GetMyTickets(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyTickets -> h.svc.GetMyTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, views)
}

// HandleGetTicket godoc
// @Summary      Get one of the authenticated user's tickets
// @Tags         tickets
// @Produce      json
// @Param        ticketID   path      int  true  "ticket ID"
// @Success      200  {object}  domain.Ticket
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/{ticketID} [get]
// @Security     Bearer
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	ticketID, err := strconv.ParseUint(ctx.Param("ticketID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid ticket ID")))

		return
	}

	ticket, err := h.svc.GetTicket(ctx.Request.Context(), uint(ticketID), middleware.GetUserID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
		case errors.Is(err, service.ErrNotTicketOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied())
		default:
			err = fmt.Errorf("v1.HandleGetTicket -> h.svc.GetTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleSubmitProof godoc
// @Summary      Upload a payment proof image for a pending ticket
// @Tags         payments
// @Accept       multipart/form-data
// @Produce      json
// @Param        ticketID   path      int   true  "ticket ID"
// @Param        proof      formData  file  true  "proof image"
// @Success      200  {object}  response.AckResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/{ticketID}/proof [post]
// @Security     Bearer
func (h *TicketHandler) HandleSubmitProof(ctx *gin.Context) {
	ticketID, err := strconv.ParseUint(ctx.Param("ticketID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid ticket ID")))

		return
	}

	fileHeader, err := ctx.FormFile("proof")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("proof image is required")))

		return
	}

	if fileHeader.Size > maxProofSize {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("proof image too large")))

		return
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("proof must be an image")))

		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	defer file.Close()

	proof, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitProof -> io.ReadAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	err = h.svc.SubmitProof(ctx.Request.Context(), uint(ticketID), middleware.GetUserID(ctx), proof)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
		case errors.Is(err, service.ErrNotTicketOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied())
		case errors.Is(err, service.ErrTicketNotPending):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTicketNotPending))
		case errors.Is(err, service.ErrUploadFailed):
			response.RenderErr(ctx, response.ErrBadGateway(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitProof -> h.svc.SubmitProof -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.Ack())
}
