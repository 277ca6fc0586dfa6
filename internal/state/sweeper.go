package state

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweepable is implemented by stores that evict their own expired entries.
type Sweepable interface {
	SweepExpired(now time.Time) int
}

// Sweeper periodically evicts expired conversation entries and finished
// payment sessions.
type Sweeper struct {
	targets   []Sweepable
	pollEvery time.Duration
}

func NewSweeper(targets ...Sweepable) *Sweeper {
	return &Sweeper{targets: targets, pollEvery: time.Minute}
}

func (s *Sweeper) Run(ctx context.Context) {
	log.Info().Msg("session sweeper: started")
	t := time.NewTicker(s.pollEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session sweeper: stopping")
			return
		case now := <-t.C:
			s.tick(now)
		}
	}
}

func (s *Sweeper) tick(now time.Time) {
	total := 0
	for _, tgt := range s.targets {
		total += tgt.SweepExpired(now)
	}
	if total > 0 {
		log.Info().Int("evicted", total).Msg("session sweeper: expired sessions removed")
	}
}
