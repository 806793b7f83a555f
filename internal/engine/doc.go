// Package engine wires a validated config.Config into a running process:
// it connects the MQTT session, binds the configured topics (or, in
// sparkplug mode, subscribes the Sparkplug Network Mode tree), drives the
// trigger scheduler's publish ticks, and owns the shutdown sequence
// described in spec.md §5 (stop accepting new ticks, drain in-flight
// pipelines with a bounded deadline, disconnect cleanly, close sinks).
package engine
