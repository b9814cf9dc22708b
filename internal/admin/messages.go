package admin

import (
	"fmt"

	"github.com/udisondev/moderation/internal/model"
)

// Messages holds the templates used for results and global announcements.
// Every template except Offline takes the player name as its first verb.
type Messages struct {
	Banned     string
	Unbanned   string
	Muted      string
	Unmuted    string
	Kicked     string
	Killed     string // broadcast on Kill
	KillResult string // returned to the caller on Kill
	Offline    string
	Warped     string // name, map id, x, y
}

// DefaultMessages returns the stock English templates.
func DefaultMessages() Messages {
	return Messages{
		Banned:     "%s has been banned!",
		Unbanned:   "%s has been unbanned!",
		Muted:      "%s has been muted!",
		Unmuted:    "%s has been unmuted!",
		Kicked:     "%s has been kicked by the server!",
		Killed:     "%s has been killed by the server!",
		KillResult: "%s has been killed!",
		Offline:    "player offline",
		Warped:     "Warped '%s' to %s (%d, %d).",
	}
}

// WithDefaults fills empty templates from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&m.Banned, d.Banned)
	fill(&m.Unbanned, d.Unbanned)
	fill(&m.Muted, d.Muted)
	fill(&m.Unmuted, d.Unmuted)
	fill(&m.Kicked, d.Kicked)
	fill(&m.Killed, d.Killed)
	fill(&m.KillResult, d.KillResult)
	fill(&m.Offline, d.Offline)
	fill(&m.Warped, d.Warped)
	return m
}

func (m Messages) warped(name string, loc model.Location) string {
	return fmt.Sprintf(m.Warped, name, loc.MapID, loc.X, loc.Y)
}
