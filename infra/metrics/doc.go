// Package metrics provides Prometheus and InfluxDB implementations of the
// core metrics sink. Importing it registers the "prometheus" and "influx"
// sink types.
package metrics
