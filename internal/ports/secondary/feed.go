package secondary

// StatusFeed fans newly recorded observations out to live subscribers.
type StatusFeed interface {
	// Publish delivers the record to every subscriber of its service.
	// It must not block on slow subscribers.
	Publish(record StatusLogRecord)

	// Subscribe returns a channel of records for one service and a function
	// that ends the subscription and closes the channel.
	Subscribe(serviceID int64) (<-chan StatusLogRecord, func())
}
