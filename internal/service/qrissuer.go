package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/gabadev/furduncinho047-api/internal/storage"
)

const (
	ticketCodePrefix = "FD047"
	qrImageFolder    = "furduncinho/qrcodes"
	qrImageSize      = 256
)

// IssuedTicket carries everything approvePayment persists onto the ticket.
type IssuedTicket struct {
	QRHash      string
	TicketCode  string
	QRImagePath string
}

// QRIssuer mints the redemption hash, renders it as a QR image, uploads the
// image and generates the human-readable ticket code. It holds no state;
// the caller persists every output, and an upload failure aborts the whole
// issuance so no ticket ever references a missing image.
type QRIssuer struct {
	store storage.ObjectStore
}

func NewQRIssuer(store storage.ObjectStore) *QRIssuer {
	return &QRIssuer{
		store: store,
	}
}

func (i *QRIssuer) Issue(ctx context.Context, ticketID, userID uint) (IssuedTicket, error) {
	hash, err := generateQRHash(ticketID, userID)
	if err != nil {
		return IssuedTicket{}, fmt.Errorf("generateQRHash -> %w", err)
	}

	png, err := qrcode.Encode(hash, qrcode.Medium, qrImageSize)
	if err != nil {
		zap.L().Error("failed to render QR image", zap.Uint("ticketID", ticketID), zap.Error(err))

		return IssuedTicket{}, fmt.Errorf("qrcode.Encode -> %w", ErrUploadFailed)
	}

	imageURL, err := i.store.Upload(ctx, png, qrImageFolder)
	if err != nil {
		zap.L().Error("failed to upload QR image", zap.Uint("ticketID", ticketID), zap.Error(err))

		return IssuedTicket{}, fmt.Errorf("i.store.Upload -> %w", ErrUploadFailed)
	}

	code, err := generateTicketCode()
	if err != nil {
		return IssuedTicket{}, fmt.Errorf("generateTicketCode -> %w", err)
	}

	return IssuedTicket{
		QRHash:      hash,
		TicketCode:  code,
		QRImagePath: imageURL,
	}, nil
}

// generateQRHash derives the unguessable redemption secret: a sha256 digest
// over the ticket, its owner, the current time and 16 random bytes.
func generateQRHash(ticketID, userID uint) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	data := fmt.Sprintf("%d-%d-%d-%s", ticketID, userID, time.Now().UnixMilli(), hex.EncodeToString(nonce))
	sum := sha256.Sum256([]byte(data))

	return hex.EncodeToString(sum[:]), nil
}

func generateTicketCode() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	return ticketCodePrefix + "-" + strings.ToUpper(hex.EncodeToString(suffix)), nil
}
