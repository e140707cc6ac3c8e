package diffusion

import (
	"github.com/acimap/kernel/internal/core/ecs"
	"github.com/acimap/kernel/internal/effect"
	"github.com/acimap/kernel/internal/world"
)

// EffectSource enumerates effect providers in a fixed order.
type EffectSource interface {
	EachProvider(fn func(ecs.EntityID, effect.Provider))
}

// ApplyAirEffectors runs every object's air effects in source order. For each
// object its levelers run first, then its oxygen users, then its pushers.
func ApplyAirEffectors(g *world.Grid, src EffectSource, dt float32) {
	src.EachProvider(func(_ ecs.EntityID, p effect.Provider) {
		for _, l := range p.AirLevelers() {
			t := g.At(l.X, l.Y)
			if !t.IsGround() {
				continue
			}
			t.Air = l.Air()
		}

		for _, u := range p.OxygenUsers() {
			t := g.At(u.X, u.Y)
			if !t.IsGround() {
				continue
			}
			used := u.ChangePerSec * dt
			// Not enough oxygen means nothing is used at all.
			if t.Air.Oxygen < used {
				continue
			}
			t.Air.Oxygen -= used
			t.Air.Fumes += used
		}

		for _, pu := range p.AirPushers() {
			push(g, pu, dt)
		}
	})
}

func push(g *world.Grid, p effect.AirPusher, dt float32) {
	tx, ty, ok := p.Direction.Step(p.X, p.Y, g.Width(), g.Height())
	if !ok {
		return
	}
	src := g.At(p.X, p.Y)
	dst := g.At(tx, ty)
	if !src.IsGround() || !dst.IsGround() {
		return
	}
	share := p.Amount * dt
	taken := world.AirData{
		Nitrogen: src.Air.Nitrogen * share,
		Oxygen:   src.Air.Oxygen * share,
		Fumes:    src.Air.Fumes * share,
	}
	dst.Air.Nitrogen += taken.Nitrogen
	dst.Air.Oxygen += taken.Oxygen
	dst.Air.Fumes += taken.Fumes
	src.Air.Nitrogen -= taken.Nitrogen
	src.Air.Oxygen -= taken.Oxygen
	src.Air.Fumes -= taken.Fumes
}

// ApplyLiquidLevelers force-sets the liquid of every leveled tile.
func ApplyLiquidLevelers(g *world.Grid, src EffectSource) {
	src.EachProvider(func(_ ecs.EntityID, p effect.Provider) {
		for _, l := range p.LiquidLevelers() {
			t := g.At(l.X, l.Y)
			if !t.IsGround() {
				continue
			}
			t.Liquids = l.Target
		}
	})
}
