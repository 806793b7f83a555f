package sparkplug

import (
	"fmt"
	"strings"
)

// Logger is the minimal sink Network uses to report stale-alias and
// malformed-message conditions, satisfied by *logging.Logger without this
// package importing it directly.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// edgeNodeState is the in-memory, per-(group,edge_node) state spec.md §4.8
// describes: template definitions and alias->name lookups learned from
// NBIRTH and DBIRTH. Each birth adds or overwrites entries; entries from an
// earlier birth are not cleared.
type edgeNodeState struct {
	online    bool
	aliases   map[uint64]string
	templates map[string]Metric
}

func newEdgeNodeState() *edgeNodeState {
	return &edgeNodeState{aliases: map[uint64]string{}, templates: map[string]Metric{}}
}

// hostState is the STATE-topic counterpart, tracking a host application's
// last known online/offline status.
type hostState struct {
	online    bool
	timestamp uint64
}

// Network is the Sparkplug Network Mode engine from spec.md §4.8: it
// consumes inbound (topic, decoded payload) pairs from the `spBv1.0/#`
// subscription tree and maintains alias/template state per edge node.
type Network struct {
	logger    Logger
	edgeNodes map[string]*edgeNodeState
	hosts     map[string]*hostState
}

func NewNetwork(logger Logger) *Network {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Network{
		logger:    logger,
		edgeNodes: map[string]*edgeNodeState{},
		hosts:     map[string]*hostState{},
	}
}

func edgeNodeKey(groupID, edgeNodeID string) string {
	return groupID + "/" + edgeNodeID
}

func (n *Network) edgeNode(groupID, edgeNodeID string) *edgeNodeState {
	key := edgeNodeKey(groupID, edgeNodeID)
	state, ok := n.edgeNodes[key]
	if !ok {
		state = newEdgeNodeState()
		n.edgeNodes[key] = state
	}
	return state
}

// Handle processes one decoded Sparkplug-B binary message (any edge-node
// topic) and returns the console-renderable line spec.md §4.8 describes. It
// also updates the network's alias/template tracking state as a side
// effect. STATE topics carry a JSON payload instead and are handled by
// HandleState.
func (n *Network) Handle(topic Topic, msg Message) string {
	return n.handleEdgeNode(topic, msg)
}

// HandleState processes a STATE topic's JSON payload tree (spec.md §4.7's
// `{{sp_host_online}}`/`{{sp_host_timestamp}}` placeholders are sourced
// from this same tree).
func (n *Network) HandleState(topic Topic, tree any) string {
	host := n.hosts[topic.HostID]
	if host == nil {
		host = &hostState{}
		n.hosts[topic.HostID] = host
	}

	online, ts := stateFieldsFromTree(tree)
	host.online = online
	host.timestamp = ts

	status := "OFFLINE"
	if online {
		status = "ONLINE"
	}
	return fmt.Sprintf("STATE host=%s status=%s timestamp=%d", topic.HostID, status, ts)
}

func (n *Network) handleEdgeNode(topic Topic, msg Message) string {
	state := n.edgeNode(topic.GroupID, topic.EdgeNodeID)

	switch topic.MessageType {
	case MessageNBIRTH, MessageDBIRTH:
		state.online = true
		n.learnAliasesAndTemplates(state, msg)
		return n.renderMetrics(topic, state, msg)

	case MessageNDEATH, MessageDDEATH:
		state.online = false
		return n.renderDeath(topic, msg)

	default: // NDATA, NCMD, DDATA, DCMD
		return n.renderMetrics(topic, state, msg)
	}
}

func (n *Network) learnAliasesAndTemplates(state *edgeNodeState, msg Message) {
	for _, m := range msg.Metrics() {
		if m.HasAlias && m.HasName {
			state.aliases[m.Alias] = m.Name
		}
		if m.Datatype.ValueKind() == ValueTemplate && m.HasName {
			state.templates[m.Name] = m
		}
	}
}

func (n *Network) renderDeath(topic Topic, msg Message) string {
	var bdSeq string
	for _, m := range msg.Metrics() {
		if m.Name == "bdSeq" {
			bdSeq = fmt.Sprintf("%v", m.Value)
		}
	}
	return fmt.Sprintf("%s group=%s edge=%s bdSeq=%s", topic.MessageType, topic.GroupID, topic.EdgeNodeID, bdSeq)
}

func (n *Network) renderMetrics(topic Topic, state *edgeNodeState, msg Message) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s group=%s edge=%s", topic.MessageType, topic.GroupID, topic.EdgeNodeID)
	if topic.DeviceID != "" {
		fmt.Fprintf(&sb, " device=%s", topic.DeviceID)
	}
	sb.WriteString("\n")

	for _, m := range msg.Metrics() {
		name := m.Name
		if name == "" && m.HasAlias {
			resolved, ok := state.aliases[m.Alias]
			if !ok {
				n.logger.Warn("sparkplug: dropping metric with unknown alias",
					"group", topic.GroupID, "edge_node", topic.EdgeNodeID, "alias", m.Alias)
				continue
			}
			name = resolved
		}
		fmt.Fprintf(&sb, "  %s (%s) = %v\n", name, m.Datatype, m.Value)
	}

	return sb.String()
}

// stateFieldsFromTree extracts `online`/`timestamp` from a STATE topic's
// JSON payload, per spec.md §4.7's `{{sp_host_online}}`/
// `{{sp_host_timestamp}}` placeholders.
func stateFieldsFromTree(v any) (online bool, timestamp uint64) {
	tree, ok := v.(map[string]any)
	if !ok {
		return false, 0
	}
	if v, ok := tree["online"].(bool); ok {
		online = v
	}
	if v, ok := tree["timestamp"]; ok {
		switch n := v.(type) {
		case float64:
			timestamp = uint64(n)
		case string:
			fmt.Sscanf(n, "%d", &timestamp)
		}
	}
	return online, timestamp
}
