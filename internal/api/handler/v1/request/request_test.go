package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  RegisterRequest{Name: "Maria Silva", Email: "maria@example.com", Password: "senha1234"},
		},
		{
			name:    "name too short",
			req:     RegisterRequest{Name: "Ma", Email: "maria@example.com", Password: "senha1234"},
			wantErr: true,
		},
		{
			name:    "bad email",
			req:     RegisterRequest{Name: "Maria Silva", Email: "not-an-email", Password: "senha1234"},
			wantErr: true,
		},
		{
			name:    "password too short",
			req:     RegisterRequest{Name: "Maria Silva", Email: "maria@example.com", Password: "abc1"},
			wantErr: true,
		},
		{
			name:    "password without a digit",
			req:     RegisterRequest{Name: "Maria Silva", Email: "maria@example.com", Password: "abcdefgh"},
			wantErr: true,
		},
		{
			name:    "password without a letter",
			req:     RegisterRequest{Name: "Maria Silva", Email: "maria@example.com", Password: "12345678"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateScanRequestValidate(t *testing.T) {
	hash := strings.Repeat("ab", 32)

	tests := []struct {
		name    string
		req     ValidateScanRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  ValidateScanRequest{QRHash: hash, DeviceInfo: "scanner-01"},
		},
		{
			name:    "missing hash",
			req:     ValidateScanRequest{},
			wantErr: true,
		},
		{
			name:    "hash too short",
			req:     ValidateScanRequest{QRHash: "abc123"},
			wantErr: true,
		},
		{
			name:    "hash not hex",
			req:     ValidateScanRequest{QRHash: strings.Repeat("zz", 32)},
			wantErr: true,
		},
		{
			name:    "device info too long",
			req:     ValidateScanRequest{QRHash: hash, DeviceInfo: strings.Repeat("x", 201)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateEventSettingsRequestValidate(t *testing.T) {
	valid := UpdateEventSettingsRequest{
		EventName:   "Furduncinho047",
		EventDate:   "2026-11-28T22:00:00-03:00",
		Location:    "Chácara do Rosário",
		BasePrice:   3000,
		CoolerPrice: 7000,
		ServiceFee:  500,
		AllowCooler: true,
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("date must be RFC 3339", func(t *testing.T) {
		req := valid
		req.EventDate = "28/11/2026"
		assert.Error(t, req.Validate())
	})

	t.Run("prices cannot be negative", func(t *testing.T) {
		req := valid
		req.BasePrice = -1
		assert.Error(t, req.Validate())
	})
}
