// Package mqtt publishes allocation orders to brigades through an MQTT broker
// using Eclipse Paho.
package mqtt
