package world

// AirData is the gas composition of a single ground tile. Amounts are in
// atmospheres; a tile holding exactly DefaultAir has a pressure of 1.
type AirData struct {
	Nitrogen float32
	Oxygen   float32
	Fumes    float32
}

// minFreeVolume keeps Pressure finite when a tile is completely flooded.
const minFreeVolume float32 = 0.001

// DefaultAir returns a breathable atmosphere at sea level.
func DefaultAir() AirData {
	return AirData{Nitrogen: 0.79, Oxygen: 0.21}
}

// Total is the sum of all components.
func (a AirData) Total() float32 { return a.Nitrogen + a.Oxygen + a.Fumes }

func (a AirData) NitrogenFraction() float32 { return a.Nitrogen / a.Total() }
func (a AirData) OxygenFraction() float32   { return a.Oxygen / a.Total() }
func (a AirData) FumesFraction() float32    { return a.Fumes / a.Total() }

// Pressure returns the air pressure of the tile. Liquid occupying part of the
// tile compresses the same amount of air into a smaller volume.
func (a AirData) Pressure(liquidLevel float32) float32 {
	free := 1 - liquidLevel/MaxLiquidLevel
	if free < minFreeVolume {
		free = minFreeVolume
	}
	return a.Total() / free
}

// ClampNonNegative zeroes any component that went below zero.
func (a *AirData) ClampNonNegative() {
	if a.Nitrogen < 0 {
		a.Nitrogen = 0
	}
	if a.Oxygen < 0 {
		a.Oxygen = 0
	}
	if a.Fumes < 0 {
		a.Fumes = 0
	}
}
