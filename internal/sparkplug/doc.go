// Package sparkplug decodes the fixed Eclipse Sparkplug-B payload schema,
// parses its topic grammar, and tracks edge-node/host-application state for
// Sparkplug Network Mode.
package sparkplug
