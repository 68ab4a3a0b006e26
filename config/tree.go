// Package config provides the tree-keyed configuration query passes
// and runtime variants consult: passes.retiming.enabled,
// passes.cdc.allow, and similar dotted-path options, loaded from YAML
// and looked up by glob-style pattern plus key.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tree is an immutable-by-convention, pattern-keyed configuration
// store. There is no global mutable singleton: callers hold and pass
// their own *Tree. Neither hlim.Circuit nor pass.Pipeline takes a Tree.
type Tree struct {
	values map[string]any
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{values: make(map[string]any)}
}

// Load parses YAML bytes into a flat dotted-path tree, e.g. a document
//
//	passes:
//	  retiming:
//	    enabled: true
//
// becomes the key "passes.retiming.enabled" -> true.
func Load(data []byte) (*Tree, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	t := NewTree()
	t.flatten("", root)
	return t, nil
}

func (t *Tree) flatten(prefix string, node map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			t.flatten(key, nested)
			continue
		}
		t.values[key] = v
	}
}

// With returns a copy of the tree with key set to value — a fluent
// builder in the style of config.DeviceBuilder's value-receiver
// WithX methods, so construction-time option overrides never mutate a
// tree another part of the pipeline is still holding a reference to.
func (t *Tree) With(key string, value any) *Tree {
	next := &Tree{values: make(map[string]any, len(t.values)+1)}
	for k, v := range t.values {
		next.values[k] = v
	}
	next.values[key] = value
	return next
}

// Get looks up key directly (no pattern matching) and reports whether
// it was present.
func (t *Tree) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Bool looks up key as a bool, defaulting to def if absent or not a
// bool — the form passes.*.enabled queries use.
func (t *Tree) Bool(key string, def bool) bool {
	v, ok := t.values[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// String looks up key as a string, defaulting to def if absent or not
// a string.
func (t *Tree) String(key string, def string) string {
	v, ok := t.values[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Query resolves a config_tree(pattern, key) lookup: pattern is a
// dotted path that may use "*" to match exactly one path segment
// (passes.*.enabled matches passes.retiming.enabled and
// passes.cdc.enabled alike). Query returns every value whose full key
// matches, keyed by the concrete path that matched.
func (t *Tree) Query(pattern string) map[string]any {
	segments := splitPath(pattern)
	out := make(map[string]any)
	for k, v := range t.values {
		if pathMatches(segments, splitPath(k)) {
			out[k] = v
		}
	}
	return out
}

func splitPath(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func pathMatches(pattern, key []string) bool {
	if len(pattern) != len(key) {
		return false
	}
	for i, p := range pattern {
		if p != "*" && p != key[i] {
			return false
		}
	}
	return true
}
