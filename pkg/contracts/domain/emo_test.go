package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEmoRecord_StatusAt(t *testing.T) {
	reference := date(2023, 12, 15)
	threshold := 30

	tests := []struct {
		name       string
		expiration time.Time
		want       ExpiryStatus
	}{
		{
			name:       "expired yesterday",
			expiration: date(2023, 12, 14),
			want:       StatusExpired,
		},
		{
			name:       "expires on reference date",
			expiration: date(2023, 12, 15),
			want:       StatusExpiringSoon,
		},
		{
			name:       "expires inside window",
			expiration: date(2024, 1, 1),
			want:       StatusExpiringSoon,
		},
		{
			name:       "expires exactly at threshold boundary",
			expiration: date(2024, 1, 14), // reference + 30 days
			want:       StatusExpiringSoon,
		},
		{
			name:       "expires one day past threshold",
			expiration: date(2024, 1, 15),
			want:       StatusValid,
		},
		{
			name:       "expires far in the future",
			expiration: date(2025, 6, 1),
			want:       StatusValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := EmoRecord{
				EmployeeID:     "E1",
				Area:           "Plant",
				ExamDate:       date(2023, 1, 1),
				ExpirationDate: tt.expiration,
			}
			assert.Equal(t, tt.want, record.StatusAt(reference, threshold))
		})
	}
}

func TestEmoRecord_DaysUntilExpiry(t *testing.T) {
	reference := date(2023, 12, 15)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"same day", date(2023, 12, 15), 0},
		{"in a week", date(2023, 12, 22), 7},
		{"overdue", date(2023, 12, 10), -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := EmoRecord{ExpirationDate: tt.expiration}
			assert.Equal(t, tt.want, record.DaysUntilExpiry(reference))
		})
	}
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts{Expired: 2, ExpiringSoon: 3, Valid: 5}
	assert.Equal(t, 10, counts.Total())

	counts.Add(StatusCounts{Expired: 1, Valid: 1})
	assert.Equal(t, 3, counts.Expired)
	assert.Equal(t, 3, counts.ExpiringSoon)
	assert.Equal(t, 6, counts.Valid)
	assert.Equal(t, 12, counts.Total())
}

func TestReport_TotalRecords(t *testing.T) {
	rpt := &Report{
		Areas: []AreaReport{
			{Area: "A", Records: make([]EmoRecord, 3)},
			{Area: "B", Records: make([]EmoRecord, 2)},
		},
	}
	assert.Equal(t, 5, rpt.TotalRecords())
}
