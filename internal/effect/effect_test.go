package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acimap/kernel/internal/world"
)

func TestRelativePusherFollowsFacing(t *testing.T) {
	r := RelativeAirPusher{DX: 1, DY: 0, Direction: world.North, Amount: 2}

	for _, tc := range []struct {
		facing world.Facing
		want   AirPusher
	}{
		{world.North, AirPusher{X: 6, Y: 5, Direction: world.North, Amount: 2}},
		{world.East, AirPusher{X: 5, Y: 6, Direction: world.East, Amount: 2}},
		{world.South, AirPusher{X: 4, Y: 5, Direction: world.South, Amount: 2}},
		{world.West, AirPusher{X: 5, Y: 4, Direction: world.West, Amount: 2}},
	} {
		got := r.ToAbsolute(Anchor{X: 5, Y: 5, Facing: tc.facing})
		assert.Equal(t, tc.want, got, "facing %v", tc.facing)
	}
}

func TestRelativePusherOffsetRotates(t *testing.T) {
	r := RelativeAirPusher{DX: 2, DY: 1, Direction: world.East, Amount: 1}
	got := r.ToAbsolute(Anchor{X: 3, Y: 2, Facing: world.South})
	assert.Equal(t, AirPusher{X: 1, Y: 1, Direction: world.West, Amount: 1}, got)
}

func TestNoneProvidesNothing(t *testing.T) {
	var p Provider = None{}
	assert.Empty(t, p.AirLevelers())
	assert.Empty(t, p.OxygenUsers())
	assert.Empty(t, p.AirPushers())
	assert.Empty(t, p.LiquidLevelers())
}
