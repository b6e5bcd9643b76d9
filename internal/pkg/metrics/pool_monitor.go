package metrics

import "go.mongodb.org/mongo-driver/event"

// PoolMonitor returns a driver pool monitor feeding connection counts into
// the MongoPoolConnections gauge.
func PoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				MongoPoolConnections.WithLabelValues("open").Inc()
			case event.ConnectionClosed:
				MongoPoolConnections.WithLabelValues("open").Dec()
			case event.GetSucceeded:
				MongoPoolConnections.WithLabelValues("in_use").Inc()
			case event.ConnectionReturned:
				MongoPoolConnections.WithLabelValues("in_use").Dec()
			}
		},
	}
}
