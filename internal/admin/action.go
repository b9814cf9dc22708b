package admin

import (
	"fmt"
	"strings"
)

// Action is a privileged moderation action that can be applied to a player.
type Action int

const (
	ActionBan Action = iota + 1
	ActionUnBan
	ActionMute
	ActionUnMute
	ActionWarpTo
	ActionWarpToLoc
	ActionKick
	ActionKill
	ActionWarpMeTo
	ActionWarpToMe
	ActionSetSprite
	ActionSetFace
	ActionSetAccess
)

var actionNames = map[Action]string{
	ActionBan:       "Ban",
	ActionUnBan:     "UnBan",
	ActionMute:      "Mute",
	ActionUnMute:    "UnMute",
	ActionWarpTo:    "WarpTo",
	ActionWarpToLoc: "WarpToLoc",
	ActionKick:      "Kick",
	ActionKill:      "Kill",
	ActionWarpMeTo:  "WarpMeTo",
	ActionWarpToMe:  "WarpToMe",
	ActionSetSprite: "SetSprite",
	ActionSetFace:   "SetFace",
	ActionSetAccess: "SetAccess",
}

// Actions returns every known action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, len(actionNames))
	for a := ActionBan; a <= ActionSetAccess; a++ {
		out = append(out, a)
	}
	return out
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// RequiresSession reports whether the action only makes sense for an online player.
func (a Action) RequiresSession() bool {
	switch a {
	case ActionWarpTo, ActionWarpToLoc, ActionKick, ActionKill:
		return true
	default:
		return false
	}
}

// ParseAction parses an action name case-insensitively ("ban", "UnMute", "warptoloc").
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	for a, name := range actionNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown admin action %q", s)
}
