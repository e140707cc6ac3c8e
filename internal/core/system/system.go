package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate Phase = iota // 0: deliver last tick's events
	PhaseScript                 // 1: scenario script hooks
	PhaseSimulate               // 2: diffusion, effectors, AI
	PhasePersist                // 3: snapshots
	PhaseFrame                  // 4: character movement, runs at frame rate
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre_update"
	case PhaseScript:
		return "script"
	case PhaseSimulate:
		return "simulate"
	case PhasePersist:
		return "persist"
	case PhaseFrame:
		return "frame"
	}
	return "unknown"
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
