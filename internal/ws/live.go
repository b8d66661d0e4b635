package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"grid-balance/internal/config"
	"grid-balance/internal/forecast"
	"grid-balance/internal/sim"
)

// Live re-runs a complete simulation on every tick and broadcasts the result.
// Each tick is an independent run over a fresh forecast; no state is shared
// across ticks beyond the configuration, so a slow client can never stall or
// corrupt a run.
type Live struct {
	mu       sync.Mutex
	hub      *Hub
	engine   *sim.Engine
	cfg      config.SimulationConfig
	interval time.Duration
	seed     int64
	running  bool
	stopCh   chan struct{}
}

func NewLive(hub *Hub, engine *sim.Engine, cfg config.SimulationConfig) *Live {
	return &Live{
		hub:      hub,
		engine:   engine,
		cfg:      cfg,
		interval: 5 * time.Second,
	}
}

// SetConfig replaces the configuration used by subsequent ticks.
func (l *Live) SetConfig(cfg config.SimulationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
	return nil
}

// SetInterval adjusts the tick period, clamped to [1s, 5m].
func (l *Live) SetInterval(d time.Duration) {
	if d < time.Second {
		d = time.Second
	}
	if d > 5*time.Minute {
		d = 5 * time.Minute
	}
	l.mu.Lock()
	l.interval = d
	l.mu.Unlock()
}

// Start begins the tick loop. No-op when already running.
func (l *Live) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.stopCh = make(chan struct{})
	stop := l.stopCh
	l.mu.Unlock()

	go l.loop(stop)
	l.broadcastState()
}

// Stop halts the tick loop. No-op when not running.
func (l *Live) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	l.broadcastState()
}

// Running reports whether the tick loop is active.
func (l *Live) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Live) loop(stop chan struct{}) {
	l.Tick()
	for {
		l.mu.Lock()
		interval := l.interval
		l.mu.Unlock()

		select {
		case <-stop:
			return
		case <-time.After(interval):
			l.Tick()
		}
	}
}

// Tick runs one complete simulation and broadcasts the result. Exported for
// deterministic testing; the loop calls it on each period.
func (l *Live) Tick() {
	l.mu.Lock()
	cfg := l.cfg
	seed := l.seed
	l.seed++
	l.mu.Unlock()

	points, err := forecast.Synthetic{Seed: seed}.Forecast(cfg.SimulationHours, cfg)
	if err != nil {
		log.Printf("[Live] forecast failed: %v", err)
		return
	}
	result, err := l.engine.Simulate(cfg, points)
	if err != nil {
		log.Printf("[Live] simulation failed: %v", err)
		return
	}

	l.broadcast("result", ResultPayload{
		Summary:            result.Summary,
		Alerts:             result.Alerts,
		MaintenanceWindows: result.TopWindows(3),
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
	})
}

func (l *Live) broadcastState() {
	l.mu.Lock()
	p := StatePayload{
		Running:     l.running,
		IntervalSec: l.interval.Seconds(),
	}
	l.mu.Unlock()
	l.broadcast("state", p)
}

func (l *Live) broadcast(msgType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Live] marshal error: %v", err)
		return
	}
	env, err := json.Marshal(Envelope{Type: msgType, Payload: raw})
	if err != nil {
		log.Printf("[Live] marshal error: %v", err)
		return
	}
	l.hub.Broadcast(env)
}
