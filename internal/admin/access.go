// Package admin applies moderation actions (ban, mute, kick, warp, ...) to
// players, reconciling persistent ban/mute records with live sessions.
package admin

// AccessLevel defines an operator access level and the actions it may apply.
// Level 0 = no moderation rights, 1+ = moderator, 100+ = full admin.
type AccessLevel struct {
	Level       int32
	Name        string
	CanBan      bool
	CanMute     bool
	CanKick     bool
	CanWarp     bool
	CanKill     bool
	CanEditChar bool // sprite, face, access
}

var defaultAccessLevels = map[int32]*AccessLevel{
	0: {
		Level: 0,
		Name:  "User",
	},
	1: {
		Level:   1,
		Name:    "Moderator",
		CanBan:  true,
		CanMute: true,
		CanKick: true,
	},
	2: {
		Level:   2,
		Name:    "Game Master",
		CanBan:  true,
		CanMute: true,
		CanKick: true,
		CanWarp: true,
		CanKill: true,
	},
	100: {
		Level:       100,
		Name:        "Administrator",
		CanBan:      true,
		CanMute:     true,
		CanKick:     true,
		CanWarp:     true,
		CanKill:     true,
		CanEditChar: true,
	},
}

// GetAccessLevel returns AccessLevel for the given level value.
// Unknown levels inherit from the highest matching known level below them.
// Negative levels (revoked operators) return nil.
func GetAccessLevel(level int32) *AccessLevel {
	if level < 0 {
		return nil
	}

	if al, ok := defaultAccessLevels[level]; ok {
		return al
	}

	var best *AccessLevel
	for _, al := range defaultAccessLevels {
		if al.Level <= level && (best == nil || al.Level > best.Level) {
			best = al
		}
	}
	return best
}

// Permits reports whether the level may request action.
// Requests for unsupported actions are permitted to whoever could use their
// closest supported counterpart, so callers still get a meaningful refusal.
func (al *AccessLevel) Permits(action Action) bool {
	if al == nil {
		return false
	}
	switch action {
	case ActionBan, ActionUnBan:
		return al.CanBan
	case ActionMute, ActionUnMute:
		return al.CanMute
	case ActionKick:
		return al.CanKick
	case ActionWarpTo, ActionWarpToLoc, ActionWarpMeTo, ActionWarpToMe:
		return al.CanWarp
	case ActionKill:
		return al.CanKill
	case ActionSetSprite, ActionSetFace, ActionSetAccess:
		return al.CanEditChar
	default:
		return false
	}
}
