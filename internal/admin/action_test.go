package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"Ban", ActionBan},
		{"unban", ActionUnBan},
		{"MUTE", ActionMute},
		{" UnMute ", ActionUnMute},
		{"warpto", ActionWarpTo},
		{"WarpToLoc", ActionWarpToLoc},
		{"kick", ActionKick},
		{"kill", ActionKill},
		{"warpmeto", ActionWarpMeTo},
		{"warptome", ActionWarpToMe},
		{"setsprite", ActionSetSprite},
		{"setface", ActionSetFace},
		{"setaccess", ActionSetAccess},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAction_Unknown(t *testing.T) {
	for _, in := range []string{"", "explode", "ban2"} {
		_, err := ParseAction(in)
		assert.Error(t, err, "ParseAction(%q)", in)
	}
}

func TestActions_AllValidAndNamed(t *testing.T) {
	all := Actions()
	assert.Len(t, all, 13)
	for _, a := range all {
		assert.True(t, a.Valid())
		parsed, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	assert.False(t, Action(0).Valid())
	assert.Equal(t, "Action(99)", Action(99).String())
}

func TestAction_RequiresSession(t *testing.T) {
	online := map[Action]bool{ActionWarpTo: true, ActionWarpToLoc: true, ActionKick: true, ActionKill: true}
	for _, a := range Actions() {
		assert.Equal(t, online[a], a.RequiresSession(), a.String())
	}
}

func TestParameters_Normalize(t *testing.T) {
	p := Parameters{Moderator: "  ", Reason: "  spam "}.Normalize()
	assert.Equal(t, DefaultModerator, p.Moderator)
	assert.Equal(t, "spam", p.Reason)

	p = Parameters{Moderator: " Dana "}.Normalize()
	assert.Equal(t, "Dana", p.Moderator)
}
