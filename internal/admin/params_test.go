package admin

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameters_UnmarshalJSON(t *testing.T) {
	mapID := uuid.MustParse("0b6f0c4e-3d1a-4e8b-9a51-3f7d2c1e5a90")

	tests := []struct {
		name string
		body string
		want Parameters
	}{
		{
			name: "documented names",
			body: `{"moderator":"Dana","durationMinutes":60,"applyToIp":true,"reason":"spam","x":3,"y":4,"targetMapId":"` + mapID.String() + `"}`,
			want: Parameters{Moderator: "Dana", Duration: 60, IP: true, Reason: "spam", X: 3, Y: 4, MapID: mapID},
		},
		{
			name: "short aliases",
			body: `{"duration":15,"ip":true,"mapId":"` + mapID.String() + `"}`,
			want: Parameters{Duration: 15, IP: true, MapID: mapID},
		},
		{
			name: "keys match case-insensitively",
			body: `{"Duration":5,"IP":true,"Reason":"afk"}`,
			want: Parameters{Duration: 5, IP: true, Reason: "afk"},
		},
		{
			name: "empty object",
			body: `{}`,
			want: Parameters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Parameters
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParameters_UnmarshalJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"durationMins":60}`},
		{"alias and documented name", `{"ip":false,"applyToIp":true}`},
		{"coordinate out of range", `{"x":300}`},
		{"bad map id", `{"targetMapId":"not-a-uuid"}`},
		{"not an object", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Parameters
			err := json.Unmarshal([]byte(tt.body), &got)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}
