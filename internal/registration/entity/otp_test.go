package entity

import (
	"testing"
	"time"
)

func TestOtpRecordLive(t *testing.T) {
	issued := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	ttl := 120 * time.Second
	used := issued.Add(30 * time.Second)

	tests := []struct {
		name string
		rec  OtpRecord
		now  time.Time
		want bool
	}{
		{
			name: "fresh record",
			rec:  OtpRecord{CreatedAt: issued},
			now:  issued.Add(time.Second),
			want: true,
		},
		{
			name: "at exact ttl boundary",
			rec:  OtpRecord{CreatedAt: issued},
			now:  issued.Add(ttl),
			want: true,
		},
		{
			name: "past ttl",
			rec:  OtpRecord{CreatedAt: issued},
			now:  issued.Add(ttl + time.Second),
			want: false,
		},
		{
			name: "already consumed",
			rec:  OtpRecord{CreatedAt: issued, UsedAt: &used},
			now:  issued.Add(time.Second),
			want: false,
		},
		{
			name: "force expired",
			rec:  OtpRecord{CreatedAt: issued, Expired: true},
			now:  issued.Add(time.Second),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.Live(tc.now, ttl); got != tc.want {
				t.Fatalf("Live() = %v, want %v", got, tc.want)
			}
		})
	}
}
