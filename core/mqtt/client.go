package mqtt

import "github.com/kilianp07/brigade/core/model"

// OrderPublisher sends allocation orders to the brigades in the field.
type OrderPublisher interface {
	// PublishOrder sends the allocation to its brigade and returns the order
	// identifier.
	PublishOrder(runID string, a model.Allocation) (orderID string, err error)
}
