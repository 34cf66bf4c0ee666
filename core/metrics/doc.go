// Package metrics defines the sinks receiving simulation results.
//
// A Sink is called once per simulated day. Sinks that also implement
// RunRecorder receive the final outcome of a run. Implementations live in
// infra/metrics and are built from configuration through the registry in
// this package.
package metrics
