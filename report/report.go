// Package report is the debug/reporting sink construction-time and
// post-processing events flow through: design warnings, pass
// advisories, and (when enabled) per-cycle waveform sampling. It is a
// thin structured layer over log/slog: one custom slog.Level per
// channel plus a single slog.Any payload attribute, rather than a
// bespoke logging stack.
package report

import (
	"context"
	"log/slog"

	"github.com/sarchlab/gatery-go/hlim"
)

// Custom levels bracketing the standard four. LevelDesignWarning sits between
// Info and Warn for post-processing advisories ("retiming refused:
// reset mismatch") that are worth surfacing but not yet an error;
// LevelWaveform sits below Debug so per-event waveform-sample tracing
// stays silent unless a caller explicitly lowers the handler's level.
const (
	LevelWaveform      slog.Level = slog.LevelDebug - 4
	LevelDesignWarning slog.Level = slog.LevelInfo + 2
)

// NodeRef is a JSON-friendly summary of a node's construction-site
// identity.
type NodeRef struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name,omitempty"`
	TypeName string `json:"type"`
}

// GroupRef is a JSON-friendly summary of a NodeGroup's position in the
// hierarchy.
type GroupRef struct {
	QualifiedName string `json:"qualified_name"`
	Kind          string `json:"kind"`
}

func nodeRef(c *hlim.Circuit, id hlim.NodeID) NodeRef {
	n := c.Node(id)
	return NodeRef{ID: uint64(id), TypeName: n.TypeName()}
}

func groupKindName(k hlim.GroupKind) string {
	switch k {
	case hlim.GroupArea:
		return "area"
	case hlim.GroupEntity:
		return "entity"
	case hlim.GroupSFU:
		return "sfu"
	default:
		return "unknown"
	}
}

func groupRef(g *hlim.NodeGroup) GroupRef {
	return GroupRef{QualifiedName: g.QualifiedName(), Kind: groupKindName(g.Kind)}
}

// SubnetRef is a JSON-friendly summary of an hlim.Subnet, the
// structured-content counterpart for passes that report diagnostics
// scoped to an arbitrary node set rather than a single node or group.
type SubnetRef struct {
	Size int `json:"size"`
}

func subnetRef(s *hlim.Subnet) SubnetRef {
	return SubnetRef{Size: s.Len()}
}

// Reporter wraps a *slog.Logger with the structured-content
// construction this package's node/group/subnet references need.
type Reporter struct {
	logger *slog.Logger
}

// New wraps logger; passing slog.Default() gives every caller that
// doesn't need a dedicated sink a working Reporter for free.
func New(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// DesignWarning reports a post-processing advisory scoped to node,
// e.g. "retiming refused: reset mismatch".
func (r *Reporter) DesignWarning(ctx context.Context, c *hlim.Circuit, node hlim.NodeID, msg string, args ...any) {
	attrs := append([]any{slog.Any("node", nodeRef(c, node))}, args...)
	r.logger.Log(ctx, LevelDesignWarning, msg, attrs...)
}

// GroupEvent reports a construction-time or post-processing event
// scoped to a hierarchical group, e.g. "entity elaborated".
func (r *Reporter) GroupEvent(ctx context.Context, group *hlim.NodeGroup, msg string, args ...any) {
	attrs := append([]any{slog.Any("group", groupRef(group))}, args...)
	r.logger.Log(ctx, slog.LevelInfo, msg, attrs...)
}

// SubnetEvent reports an event scoped to an arbitrary node subset, e.g.
// a pass reporting how many nodes a rewrite touched.
func (r *Reporter) SubnetEvent(ctx context.Context, subnet *hlim.Subnet, msg string, args ...any) {
	attrs := append([]any{slog.Any("subnet", subnetRef(subnet))}, args...)
	r.logger.Log(ctx, slog.LevelInfo, msg, attrs...)
}

// WaveformSample reports one signal's value at one simulated instant;
// cheap to call even when waveform tracing is off, since LevelWaveform
// sits below the handler's effective level until a caller opts in.
func (r *Reporter) WaveformSample(ctx context.Context, node hlim.NodeID, timePs int64, value string) {
	r.logger.Log(ctx, LevelWaveform, "waveform sample",
		slog.Uint64("node", uint64(node)),
		slog.Int64("time_ps", timePs),
		slog.String("value", value),
	)
}
