package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicine_IsLowStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		want      bool
	}{
		{"below", 3, 10, true},
		{"at threshold", 10, 10, true},
		{"above", 11, 10, false},
		{"negative stock", -4, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Medicine{CurrentStock: tt.stock, MinimumThreshold: tt.threshold}
			assert.Equal(t, tt.want, m.IsLowStock())
		})
	}
}

func TestTokenStatus_Valid(t *testing.T) {
	assert.True(t, TokenStatusWaiting.Valid())
	assert.True(t, TokenStatusActive.Valid())
	assert.True(t, TokenStatusCompleted.Valid())
	assert.False(t, TokenStatus("cancelled").Valid())
	assert.False(t, TokenStatus("").Valid())
}

func TestToken_JSONFieldNames(t *testing.T) {
	tok := Token{
		ID:           1,
		Number:       "12",
		DepartmentID: UintPtr(1),
		Status:       TokenStatusActive,
		CreatedAt:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(tok)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "12", fields["number"])
	assert.Equal(t, float64(1), fields["departmentId"])
	assert.Equal(t, "active", fields["status"])
	assert.Contains(t, fields, "doctorId")
	assert.Nil(t, fields["doctorId"])
	assert.Contains(t, fields, "completedAt")
	assert.Nil(t, fields["completedAt"])
}
