package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"persist", PhasePersist, &log})
	r.Register(recorder{"move", PhaseFrame, &log})
	r.Register(recorder{"sim", PhaseSimulate, &log})
	r.Register(recorder{"events", PhasePreUpdate, &log})
	r.Register(recorder{"script", PhaseScript, &log})
	r.Register(recorder{"sim2", PhaseSimulate, &log})

	r.Tick(time.Second)
	assert.Equal(t, []string{"events", "script", "sim", "sim2", "persist"}, log)

	log = nil
	r.TickPhase(PhaseFrame, time.Millisecond)
	assert.Equal(t, []string{"move"}, log)
	assert.Equal(t, 6, r.Len())
	assert.Equal(t, "frame", PhaseFrame.String())
}
