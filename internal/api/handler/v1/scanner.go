package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/request"
	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/response"
	"github.com/gabadev/furduncinho047-api/internal/api/middleware"
	"github.com/gabadev/furduncinho047-api/internal/domain"
)

type ScannerService interface {
	ValidateScan(ctx context.Context, qrHash string, adminID uint, deviceInfo string) (domain.ValidationResult, error)
}

type ScannerHandler struct {
	svc ScannerService
}

func NewScannerHandler(svc ScannerService) *ScannerHandler {
	return &ScannerHandler{
		svc: svc,
	}
}

// HandleValidateScan godoc
// @Summary      Validate a scanned QR code at the door
// @Description  Denied scans (unknown hash, already used, wrong status) are
// @Description  normal outcomes returned with 200 and valid=false, so the
// @Description  scanner UI never has to special-case errors.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.ValidateScanRequest true "request body"
// @Success      200  {object}  domain.ValidationResult
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/scanner/validate [post]
// @Security     Bearer
func (h *ScannerHandler) HandleValidateScan(ctx *gin.Context) {
	var req request.ValidateScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.svc.ValidateScan(ctx.Request.Context(), req.QRHash, middleware.GetUserID(ctx), req.DeviceInfo)
	if err != nil {
		err = fmt.Errorf("v1.HandleValidateScan -> h.svc.ValidateScan -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, result)
}
