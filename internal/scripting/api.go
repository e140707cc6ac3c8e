package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/world"
)

func (e *Engine) exports() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"width":              e.luaWidth,
		"height":             e.luaHeight,
		"time":               e.luaTime,
		"tick":               e.luaTick,
		"air_pressure":       e.luaAirPressure,
		"oxygen":             e.luaOxygen,
		"liquid_level":       e.luaLiquidLevel,
		"set_wall":           e.luaSetWall,
		"set_ground":         e.luaSetGround,
		"set_ground_level":   e.luaSetGroundLevel,
		"add_air_leveler":    e.luaAddAirLeveler,
		"add_oxygen_user":    e.luaAddOxygenUser,
		"add_air_pusher":     e.luaAddAirPusher,
		"add_liquid_leveler": e.luaAddLiquidLeveler,
		"remove_object":      e.luaRemoveObject,
		"log":                e.luaLog,
	}
}

func (e *Engine) luaWidth(L *lua.LState) int {
	L.Push(lua.LNumber(e.sim.Grid().Width()))
	return 1
}

func (e *Engine) luaHeight(L *lua.LState) int {
	L.Push(lua.LNumber(e.sim.Grid().Height()))
	return 1
}

func (e *Engine) luaTime(L *lua.LState) int {
	L.Push(lua.LNumber(e.sim.Time()))
	return 1
}

func (e *Engine) luaTick(L *lua.LState) int {
	L.Push(lua.LNumber(e.sim.Ticks()))
	return 1
}

// checkTile reads an (x, y) pair starting at argument n and raises a Lua
// argument error when it falls outside the grid.
func (e *Engine) checkTile(L *lua.LState, n int) (int, int, *world.Tile) {
	x, y := L.CheckInt(n), L.CheckInt(n+1)
	g := e.sim.Grid()
	if !g.InBounds(x, y) {
		L.ArgError(n, "tile outside the grid")
		return 0, 0, nil
	}
	return x, y, g.At(x, y)
}

// air_pressure(x, y) -> number | nil for walls
func (e *Engine) luaAirPressure(L *lua.LState) int {
	_, _, t := e.checkTile(L, 1)
	p, ok := t.Pressure()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p))
	return 1
}

// oxygen(x, y) -> fraction | nil for walls
func (e *Engine) luaOxygen(L *lua.LState) int {
	_, _, t := e.checkTile(L, 1)
	air, _, ok := t.Ground()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(air.OxygenFraction()))
	return 1
}

// liquid_level(x, y) -> level, kind
func (e *Engine) luaLiquidLevel(L *lua.LState) int {
	_, _, t := e.checkTile(L, 1)
	L.Push(lua.LNumber(t.Liquids.AnyLevel()))
	L.Push(lua.LString(t.Liquids.Kind.String()))
	return 2
}

func (e *Engine) luaSetWall(L *lua.LState) int {
	_, _, t := e.checkTile(L, 1)
	t.SetWall()
	return 0
}

func (e *Engine) luaSetGround(L *lua.LState) int {
	_, _, t := e.checkTile(L, 1)
	if t.IsWall() {
		t.SetGround()
	}
	return 0
}

func (e *Engine) luaSetGroundLevel(L *lua.LState) int {
	_, _, t := e.checkTile(L, 1)
	t.GroundLevel = float32(L.CheckNumber(3))
	return 0
}

func pushID(L *lua.LState, id ecs.EntityID) int {
	L.Push(lua.LNumber(id))
	return 1
}

// add_air_leveler(x, y, nitrogen, oxygen [, fumes]) -> id
func (e *Engine) luaAddAirLeveler(L *lua.LState) int {
	x, y, _ := e.checkTile(L, 1)
	air := world.AirData{
		Nitrogen: float32(L.CheckNumber(3)),
		Oxygen:   float32(L.CheckNumber(4)),
		Fumes:    float32(L.OptNumber(5, 0)),
	}
	if air.Nitrogen < 0 || air.Oxygen < 0 || air.Fumes < 0 {
		L.ArgError(3, "air amounts must not be negative")
		return 0
	}
	id := objects.Push(e.sim.Objects(), objects.NewAirLeveler(x, y, air))
	return pushID(L, id.Raw())
}

// add_oxygen_user(x, y, rate) -> id
func (e *Engine) luaAddOxygenUser(L *lua.LState) int {
	x, y, _ := e.checkTile(L, 1)
	rate := L.CheckNumber(3)
	if rate < 0 {
		L.ArgError(3, "rate must not be negative")
		return 0
	}
	id := objects.Push(e.sim.Objects(), objects.NewOxygenUser(x, y, float32(rate)))
	return pushID(L, id.Raw())
}

// add_air_pusher(x, y, direction, amount) -> id
func (e *Engine) luaAddAirPusher(L *lua.LState) int {
	x, y, _ := e.checkTile(L, 1)
	dir, err := world.ParseFacing(L.CheckString(3))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	id := objects.Push(e.sim.Objects(), objects.NewAirPusher(x, y, dir, float32(L.CheckNumber(4))))
	return pushID(L, id.Raw())
}

// add_liquid_leveler(x, y, kind, level) -> id
func (e *Engine) luaAddLiquidLeveler(L *lua.LState) int {
	x, y, _ := e.checkTile(L, 1)
	kind, err := world.ParseLiquidKind(L.CheckString(3))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	level := float32(L.OptNumber(4, 0))
	if level < 0 || level > world.MaxLiquidLevel {
		L.ArgError(4, "liquid level out of range")
		return 0
	}
	target := world.NoLiquid()
	switch kind {
	case world.LiquidWater:
		target = world.Water(level)
	case world.LiquidLava:
		target = world.Lava(level)
	}
	id := objects.Push(e.sim.Objects(), objects.NewLiquidLeveler(x, y, target))
	return pushID(L, id.Raw())
}

// remove_object(id) -> bool
func (e *Engine) luaRemoveObject(L *lua.LState) int {
	id := L.CheckInt64(1)
	if id <= 0 || id > math.MaxUint32 {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(e.sim.Objects().RemoveAny(ecs.EntityID(id))))
	return 1
}

// log(message)
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info(L.CheckString(1))
	return 0
}
