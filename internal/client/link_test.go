package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Timestamp
	}{
		{name: "RFC 3339", json: `{"expiresAt":"2025-01-02T00:00:00Z"}`, want: "2025-01-02T00:00:00Z"},
		{name: "Zoneless", json: `{"expiresAt":"2025-01-02T00:00:00.123456"}`, want: "2025-01-02T00:00:00.123456"},
		{name: "Null", json: `{"expiresAt":null}`, want: ""},
		{name: "Missing", json: `{}`, want: ""},
		{name: "Array", json: `{"expiresAt":[2025,1,2,0,0]}`, want: "[2025,1,2,0,0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var link Link
			require.NoError(t, json.Unmarshal([]byte(tt.json), &link))
			assert.Equal(t, tt.want, link.ExpiresAt)
		})
	}
}

func TestTimestamp_Time(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	tests := []struct {
		name    string
		ts      Timestamp
		want    time.Time
		wantErr bool
	}{
		{name: "UTC", ts: "2025-01-02T00:00:00Z", want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "Offset", ts: "2025-01-02T03:00:00+03:00", want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "Zoneless fraction", ts: "2025-01-02T00:00:00.123456", want: time.Date(2025, 1, 2, 0, 0, 0, 123456000, berlin)},
		{name: "Zoneless seconds", ts: "2025-01-02T00:00:00", want: time.Date(2025, 1, 2, 0, 0, 0, 0, berlin)},
		{name: "Zoneless minutes", ts: "2025-01-02T10:30", want: time.Date(2025, 1, 2, 10, 30, 0, 0, berlin)},
		{name: "Date only", ts: "2025-01-02", want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "Empty", ts: "", wantErr: true},
		{name: "Garbage", ts: "not a date", wantErr: true},
		{name: "Array", ts: "[2025,1,2,0,0]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ts.Time(berlin)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNewTimestamp(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ts := NewTimestamp(at)
	assert.Equal(t, Timestamp("2025-01-02T03:04:05Z"), ts)

	got, err := ts.Time(time.Local)
	require.NoError(t, err)
	assert.True(t, at.Equal(got))
}
