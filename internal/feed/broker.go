// Package feed fans newly recorded status observations out to in-process
// subscribers.
package feed

import (
	"sync"

	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/ports/secondary"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Broker implements secondary.StatusFeed. Publish never blocks: a subscriber
// whose buffer is full misses the observation.
type Broker struct {
	mu     sync.Mutex
	subs   map[int64]map[*subscription]struct{}
	buffer int
	log    logger.Logger
}

type subscription struct {
	ch   chan secondary.StatusLogRecord
	once sync.Once
}

// NewBroker creates a broker. A buffer <= 0 uses DefaultBuffer.
func NewBroker(buffer int, log logger.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Broker{
		subs:   make(map[int64]map[*subscription]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers interest in a service. The returned cancel func
// unregisters and closes the channel; calling it more than once is safe.
func (b *Broker) Subscribe(serviceID int64) (<-chan secondary.StatusLogRecord, func()) {
	sub := &subscription{ch: make(chan secondary.StatusLogRecord, b.buffer)}

	b.mu.Lock()
	set, ok := b.subs[serviceID]
	if !ok {
		set = make(map[*subscription]struct{})
		b.subs[serviceID] = set
	}
	set[sub] = struct{}{}
	b.mu.Unlock()

	b.log.Debug("status subscriber added",
		logger.Int64("service_id", serviceID),
		logger.Int("subscribers", b.subscribers(serviceID)))

	cancel := func() {
		sub.once.Do(func() {
			b.mu.Lock()
			if set, ok := b.subs[serviceID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(b.subs, serviceID)
				}
			}
			close(sub.ch)
			b.mu.Unlock()

			b.log.Debug("status subscriber removed",
				logger.Int64("service_id", serviceID),
				logger.Int("subscribers", b.subscribers(serviceID)))
		})
	}

	return sub.ch, cancel
}

// Publish delivers record to every subscriber of its service.
func (b *Broker) Publish(record secondary.StatusLogRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[record.ServiceID] {
		select {
		case sub.ch <- record:
		default:
			b.log.Warn("status subscriber lagging, dropping observation",
				logger.Int64("service_id", record.ServiceID),
				logger.Int64("status_log_id", record.ID))
		}
	}
}

func (b *Broker) subscribers(serviceID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[serviceID])
}

var _ secondary.StatusFeed = (*Broker)(nil)
