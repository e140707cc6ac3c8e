package objects

import (
	"github.com/acimap/kernel/internal/effect"
	"github.com/acimap/kernel/internal/world"
)

// EnvironmentKind selects which effector an EnvironmentObject is.
type EnvironmentKind uint8

const (
	EnvAirLeveler EnvironmentKind = iota
	EnvOxygenUser
	EnvAirPusher
	EnvLiquidLeveler
)

func (k EnvironmentKind) String() string {
	switch k {
	case EnvAirLeveler:
		return "air_leveler"
	case EnvOxygenUser:
		return "oxygen_user"
	case EnvAirPusher:
		return "air_pusher"
	case EnvLiquidLeveler:
		return "liquid_leveler"
	}
	return "unknown"
}

// EnvironmentObject is a fixed effector. Only the field matching Kind is used.
type EnvironmentObject struct {
	Kind          EnvironmentKind
	AirLeveler    effect.AirLeveler
	OxygenUser    effect.OxygenUser
	AirPusher     effect.AirPusher
	LiquidLeveler effect.LiquidLeveler
}

func NewAirLeveler(x, y int, air world.AirData) EnvironmentObject {
	return EnvironmentObject{
		Kind:       EnvAirLeveler,
		AirLeveler: effect.AirLeveler{X: x, Y: y, Nitrogen: air.Nitrogen, Oxygen: air.Oxygen, Fumes: air.Fumes},
	}
}

func NewOxygenUser(x, y int, changePerSec float32) EnvironmentObject {
	return EnvironmentObject{
		Kind:       EnvOxygenUser,
		OxygenUser: effect.OxygenUser{X: x, Y: y, ChangePerSec: changePerSec},
	}
}

func NewAirPusher(x, y int, direction world.Facing, amount float32) EnvironmentObject {
	return EnvironmentObject{
		Kind:      EnvAirPusher,
		AirPusher: effect.AirPusher{X: x, Y: y, Direction: direction, Amount: amount},
	}
}

func NewLiquidLeveler(x, y int, target world.LiquidData) EnvironmentObject {
	return EnvironmentObject{
		Kind:          EnvLiquidLeveler,
		LiquidLeveler: effect.LiquidLeveler{X: x, Y: y, Target: target},
	}
}

// Position returns the tile the effector acts on.
func (o *EnvironmentObject) Position() (int, int) {
	switch o.Kind {
	case EnvAirLeveler:
		return o.AirLeveler.X, o.AirLeveler.Y
	case EnvOxygenUser:
		return o.OxygenUser.X, o.OxygenUser.Y
	case EnvAirPusher:
		return o.AirPusher.X, o.AirPusher.Y
	default:
		return o.LiquidLeveler.X, o.LiquidLeveler.Y
	}
}

func (o *EnvironmentObject) AirLevelers() []effect.AirLeveler {
	if o.Kind != EnvAirLeveler {
		return nil
	}
	return []effect.AirLeveler{o.AirLeveler}
}

func (o *EnvironmentObject) OxygenUsers() []effect.OxygenUser {
	if o.Kind != EnvOxygenUser {
		return nil
	}
	return []effect.OxygenUser{o.OxygenUser}
}

func (o *EnvironmentObject) AirPushers() []effect.AirPusher {
	if o.Kind != EnvAirPusher {
		return nil
	}
	return []effect.AirPusher{o.AirPusher}
}

func (o *EnvironmentObject) LiquidLevelers() []effect.LiquidLeveler {
	if o.Kind != EnvLiquidLeveler {
		return nil
	}
	return []effect.LiquidLeveler{o.LiquidLeveler}
}
