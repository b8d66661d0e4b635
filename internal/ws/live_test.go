package ws

import (
	"testing"
	"time"

	"grid-balance/internal/config"
	"grid-balance/internal/sim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLive() *Live {
	return NewLive(NewHub(), sim.New(), config.Default())
}

func TestSetInterval_Clamps(t *testing.T) {
	l := newTestLive()

	l.SetInterval(100 * time.Millisecond)
	assert.Equal(t, time.Second, l.interval)

	l.SetInterval(time.Hour)
	assert.Equal(t, 5*time.Minute, l.interval)

	l.SetInterval(30 * time.Second)
	assert.Equal(t, 30*time.Second, l.interval)
}

func TestSetConfig_RejectsInvalid(t *testing.T) {
	l := newTestLive()

	bad := config.Default()
	bad.TurbineCount = -1
	assert.Error(t, l.SetConfig(bad))
	// The previous configuration stays in effect.
	assert.Equal(t, config.Default().TurbineCount, l.cfg.TurbineCount)

	good := config.Default()
	good.SimulationHours = 12
	require.NoError(t, l.SetConfig(good))
	assert.Equal(t, 12, l.cfg.SimulationHours)
}

func TestStartStop_Idempotent(t *testing.T) {
	l := newTestLive()
	assert.False(t, l.Running())

	l.Start()
	assert.True(t, l.Running())
	l.Start()
	assert.True(t, l.Running())

	l.Stop()
	assert.False(t, l.Running())
	l.Stop()
	assert.False(t, l.Running())
}

func TestTick_AdvancesSeed(t *testing.T) {
	l := newTestLive()

	l.Tick()
	l.Tick()
	assert.Equal(t, int64(2), l.seed)
}
