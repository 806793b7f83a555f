// Package topicengine binds TopicEntry configuration to a running payload
// pipeline: wildcard topic matching, inbound dispatch through the filter
// chain to a set of outputs, and outbound publish assembly from a
// PublishInput through the filter chain onto the wire.
package topicengine
