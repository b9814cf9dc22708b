package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultModerator is recorded as the issuer when a request names none.
const DefaultModerator = "api"

// ErrInvalidParameters is returned when a parameters document has unknown,
// duplicated or mistyped fields.
var ErrInvalidParameters = errors.New("invalid action parameters")

// Parameters carries the optional arguments of an admin action.
// Which fields matter depends on the action: Ban/Mute read Moderator, Duration,
// Reason and IP; WarpToLoc reads X, Y and MapID; WarpTo reads MapID only.
type Parameters struct {
	Moderator string    `json:"moderator"`
	Duration  int       `json:"durationMinutes"` // <= 0 = permanent
	IP        bool      `json:"applyToIp"`       // also scope the record to the session address
	Reason    string    `json:"reason"`
	X         byte      `json:"x"`
	Y         byte      `json:"y"`
	MapID     uuid.UUID `json:"targetMapId"` // uuid.Nil = current map
}

// parameterFields maps lower-cased JSON keys to the field they fill.
// "duration", "ip" and "mapId" are the short names older clients send.
var parameterFields = map[string]string{
	"moderator":       "moderator",
	"durationminutes": "durationMinutes",
	"duration":        "durationMinutes",
	"applytoip":       "applyToIp",
	"ip":              "applyToIp",
	"reason":          "reason",
	"x":               "x",
	"y":               "y",
	"targetmapid":     "targetMapId",
	"mapid":           "targetMapId",
}

// UnmarshalJSON decodes parameters, matching keys case-insensitively and
// accepting the short aliases. Unknown keys and two keys naming the same
// field are rejected so a typo cannot silently drop a duration or IP scope.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	var out Parameters
	seen := make(map[string]string, len(raw))
	for key, value := range raw {
		field, ok := parameterFields[strings.ToLower(key)]
		if !ok {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidParameters, key)
		}
		if prev, dup := seen[field]; dup {
			return fmt.Errorf("%w: %q and %q both set %s", ErrInvalidParameters, prev, key, field)
		}
		seen[field] = key

		var dst any
		switch field {
		case "moderator":
			dst = &out.Moderator
		case "durationMinutes":
			dst = &out.Duration
		case "applyToIp":
			dst = &out.IP
		case "reason":
			dst = &out.Reason
		case "x":
			dst = &out.X
		case "y":
			dst = &out.Y
		case "targetMapId":
			dst = &out.MapID
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidParameters, key, err)
		}
	}

	*p = out
	return nil
}

// Normalize returns a copy with defaults applied and strings trimmed.
func (p Parameters) Normalize() Parameters {
	p.Moderator = strings.TrimSpace(p.Moderator)
	if p.Moderator == "" {
		p.Moderator = DefaultModerator
	}
	p.Reason = strings.TrimSpace(p.Reason)
	return p
}
