package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"25000":      "25.000",
		"1000000.49": "1.000.000",
		"-1234":      "-1.234",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateRosterPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Liga Municipal")
	g.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	regs := []*entity.Registration{
		{Team: "Tigres", Category: "libre", LeaderName: "Ana", Fee: decimal.NewFromInt(150000), Status: entity.RegistrationConfirmed},
		{Team: "Leones", LeaderID: "u2", Fee: decimal.NewFromInt(150000), Status: entity.RegistrationPending},
	}
	out, err := g.GenerateRosterPDF(context.Background(), "Copa 2024", regs)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
