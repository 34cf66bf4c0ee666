// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - AllocationMade: a brigade was committed to a focus
//   - FocusExtinguished: a focus reached zero area
//   - DayCompleted: a simulated day finished
//   - RunCompleted: the multi-day driver terminated
package events
