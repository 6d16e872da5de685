package cmdqueue

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/logger"
)

// Stats reports buffer utilization.
type Stats struct {
	Used     int
	Capacity int
	Peak     int
	Dropped  int
}

func (s Stats) String() string {
	pct := 0.0
	if s.Capacity > 0 {
		pct = 100 * float64(s.Used) / float64(s.Capacity)
	}
	return fmt.Sprintf("cmds: %d/%d bytes (%.1f%%) peak %d dropped %d",
		s.Used, s.Capacity, pct, s.Peak, s.Dropped)
}

// Queue double buffers frames: one buffer is filled while the previous
// one stays readable.
type Queue struct {
	bufs  [2]*Buffer
	cur   int
	frame int

	peak    int
	dropped int
	log     *zap.Logger
}

// New returns a queue of two buffers of capacity bytes each.
func New(capacity int) *Queue {
	return &Queue{
		bufs: [2]*Buffer{NewBuffer(capacity), NewBuffer(capacity)},
		log:  logger.Named("cmdqueue"),
	}
}

// Current returns the buffer being filled.
func (q *Queue) Current() *Buffer { return q.bufs[q.cur] }

// Previous returns the last submitted buffer.
func (q *Queue) Previous() *Buffer { return q.bufs[q.cur^1] }

// Frame returns the number of the frame being filled.
func (q *Queue) Frame() int { return q.frame }

// Toggle switches to the other buffer and empties it for a new frame.
func (q *Queue) Toggle() {
	q.cur ^= 1
	q.frame++
	q.bufs[q.cur].Reset()
	q.dropped = 0
}

// Add appends a command the frame cannot do without. Failure means the
// frame is unusable.
func (q *Queue) Add(id ID, payload any) error {
	if err := q.Current().Append(id, payload); err != nil {
		q.log.Error("required command did not fit",
			zap.Stringer("cmd", id), zap.Int("used", q.Current().Used()), zap.Error(err))
		return fmt.Errorf("adding %v: %w", id, err)
	}
	q.track()
	return nil
}

// TryAdd appends a cosmetic command, dropping it when the buffer is full.
func (q *Queue) TryAdd(id ID, payload any) bool {
	if err := q.Current().Append(id, payload); err != nil {
		if !errors.Is(err, ErrOverflow) {
			q.log.Warn("command rejected", zap.Stringer("cmd", id), zap.Error(err))
		} else {
			q.log.Debug("command dropped", zap.Stringer("cmd", id))
		}
		q.dropped++
		return false
	}
	q.track()
	return true
}

// End closes the current frame and returns its records.
func (q *Queue) End() ([]byte, error) {
	b := q.Current()
	if err := b.Seal(q.frame); err != nil {
		return nil, err
	}
	q.track()
	return b.Bytes(), nil
}

func (q *Queue) track() {
	q.peak = max(q.peak, q.Current().Used())
}

// Stats returns utilization of the current buffer.
func (q *Queue) Stats() Stats {
	return Stats{
		Used:     q.Current().Used(),
		Capacity: q.Current().Cap(),
		Peak:     q.peak,
		Dropped:  q.dropped,
	}
}
