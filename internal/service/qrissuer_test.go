package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRIssuerIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("produces a complete issuance", func(t *testing.T) {
		issuer := NewQRIssuer(&fakeStore{})

		issued, err := issuer.Issue(ctx, 12, 34)
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), issued.QRHash)
		assert.Regexp(t, regexp.MustCompile(`^FD047-[0-9A-F]{8}$`), issued.TicketCode)
		assert.Contains(t, issued.QRImagePath, "furduncinho/qrcodes")
	})

	t.Run("never repeats a hash for the same ticket", func(t *testing.T) {
		issuer := NewQRIssuer(&fakeStore{})

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			issued, err := issuer.Issue(ctx, 12, 34)
			require.NoError(t, err)
			require.False(t, seen[issued.QRHash], "hash repeated after %d issuances", i)
			seen[issued.QRHash] = true
		}
	})

	t.Run("upload failure aborts the issuance", func(t *testing.T) {
		issuer := NewQRIssuer(&fakeStore{fail: true})

		_, err := issuer.Issue(ctx, 12, 34)
		assert.ErrorIs(t, err, ErrUploadFailed)
	})
}
