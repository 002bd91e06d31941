package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringDecoding(t *testing.T) {
	var raw RawProduct
	payload := `{
		"id": 42,
		"name": "  iPhone  ",
		"price": 1999.5,
		"available": 0,
		"featured": true,
		"img": null
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	assert.Equal(t, "42", raw.ID.String(), "numbers flatten to their literal")
	assert.Equal(t, "iPhone", raw.Name.String(), "strings are trimmed")
	assert.Equal(t, "1999.5", raw.Price.String())
	assert.Equal(t, "0", raw.Available.String())
	assert.Equal(t, "true", raw.Featured.String())
	assert.Equal(t, "", raw.Img.String(), "null flattens to empty")
	assert.Equal(t, "", raw.Description.String(), "absent fields stay empty")
}

func TestCartLineTotal(t *testing.T) {
	l := CartLine{Price: decimal.RequireFromString("99.50"), Qty: 3}
	assert.True(t, l.LineTotal().Equal(decimal.RequireFromString("298.50")))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		cur  string
		want string
	}{
		{"0", "SAR", "0 SAR"},
		{"999", "SAR", "999 SAR"},
		{"1999.99", "SAR", "1,999.99 SAR"},
		{"1234567", "ر.س", "1,234,567 ر.س"},
		{"-1500.5", "USD", "-1,500.5 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in), tt.cur))
		})
	}
}
