package conditions

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/trekmate/trekmate-core/internal/types"
)

// SubscribeToLiveUpdates starts a periodic poll that synthesizes a telemetry
// sample for the trek and delivers it to onUpdate. The returned cancel
// function stops the poll and is safe to call multiple times.
//
// The random-walk sample is a stand-in for a future push channel; consumers
// see only the subscribe/cancel interface, so the transport can change
// underneath them.
func (s *Service) SubscribeToLiveUpdates(trekID int, onUpdate func(types.LiveUpdate)) (cancel func()) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(s.liveInterval)
		defer ticker.Stop()

		// Random walk anchored to plausible mountain conditions.
		temperature := rand.Float64()*30 - 10
		humidity := rand.Float64() * 100
		windSpeed := rand.Float64() * 20

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				temperature = drift(temperature, 2, -10, 20)
				humidity = drift(humidity, 5, 0, 100)
				windSpeed = drift(windSpeed, 3, 0, 20)
				onUpdate(types.LiveUpdate{
					Timestamp: time.Now(),
					TrekID:    trekID,
					Data: types.Telemetry{
						Temperature: temperature,
						Humidity:    humidity,
						WindSpeed:   windSpeed,
					},
				})
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

// drift nudges v by at most step in either direction, clamped to [min, max].
func drift(v, step, min, max float64) float64 {
	v += (rand.Float64()*2 - 1) * step
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
