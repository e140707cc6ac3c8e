package data

// DefaultScenario is the 20x10 demonstration map: a walled maze on the
// west half, a sunken basin on the east half fed by a water source and a
// lava source, two air levelers at different pressures and a few fans.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:   "air_pressure",
		Width:  20,
		Height: 10,
		Regions: []Region{
			{Rect: Rect{X: 10, Y: 0, W: 10, H: 10}, GroundLevel: -1.1},
		},
		Walls: []Rect{
			{X: 1, Y: 1, W: 1, H: 7},
			{X: 1, Y: 1, W: 7, H: 1},
			{X: 3, Y: 3, W: 1, H: 5},
			{X: 3, Y: 3, W: 5, H: 1},
			{X: 7, Y: 3, W: 1, H: 4},
			{X: 3, Y: 7, W: 3, H: 1},
		},
		AirLevelers: []AirLevelerEntry{
			{X: 0, Y: 9, AirEntry: AirEntry{Nitrogen: 0.395, Oxygen: 0.105}},
			{X: 9, Y: 0, AirEntry: AirEntry{Nitrogen: 0.79, Oxygen: 0.21}},
		},
		OxygenUsers: []OxygenUserEntry{
			{X: 5, Y: 5, Rate: 0.0001},
			{X: 18, Y: 2, Rate: 0.0001},
		},
		AirPushers: []AirPusherEntry{
			{X: 18, Y: 4, Direction: "south", Amount: 2},
			{X: 16, Y: 8, Direction: "west", Amount: 2},
			{X: 10, Y: 8, Direction: "west", Amount: 2},
		},
		LiquidLevelers: []LiquidLevelerEntry{
			{X: 19, Y: 0, Liquid: "water", Level: 1.0},
			{X: 19, Y: 9, Liquid: "lava", Level: 1.1},
		},
	}
}
