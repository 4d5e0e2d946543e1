// Package frontmatter builds the YAML metadata block written at the top of
// each exported post. Keys keep insertion order so output is deterministic.
package frontmatter

import (
	"bytes"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Block is an insertion-ordered YAML mapping.
// The zero value is not usable; call NewBlock.
type Block struct {
	node *yaml.Node
}

// NewBlock returns an empty mapping.
func NewBlock() *Block {
	return &Block{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// String returns a string scalar node. The encoder quotes it when the
// plain form would read back as another type ("true", "2024", "a: b").
func String(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Strings returns a sequence of string scalars.
func Strings(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, String(v))
	}
	return seq
}

// Bool returns a boolean scalar node.
func Bool(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

// Int returns an integer scalar node.
func Int(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

// Time returns an RFC 3339 timestamp node.
func Time(t time.Time) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: t.Format(time.RFC3339)}
}

// index returns the position of key's key node in the mapping content, or -1.
func (b *Block) index(key string) int {
	for i := 0; i+1 < len(b.node.Content); i += 2 {
		if b.node.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// Set stores value under key. An existing key keeps its position and has
// its value replaced; a new key is appended.
func (b *Block) Set(key string, value *yaml.Node) {
	if i := b.index(key); i >= 0 {
		b.node.Content[i+1] = value
		return
	}
	b.node.Content = append(b.node.Content, String(key), value)
}

// SetDefault stores value under key only if key is absent.
// It reports whether the value was stored.
func (b *Block) SetDefault(key string, value *yaml.Node) bool {
	if b.Has(key) {
		return false
	}
	b.node.Content = append(b.node.Content, String(key), value)
	return true
}

// Has reports whether key is present.
func (b *Block) Has(key string) bool {
	return b.index(key) >= 0
}

// Get returns the value node stored under key.
func (b *Block) Get(key string) (*yaml.Node, bool) {
	i := b.index(key)
	if i < 0 {
		return nil, false
	}
	return b.node.Content[i+1], true
}

// Keys returns the keys in insertion order.
func (b *Block) Keys() []string {
	keys := make([]string, 0, b.Len())
	for i := 0; i+1 < len(b.node.Content); i += 2 {
		keys = append(keys, b.node.Content[i].Value)
	}
	return keys
}

// Len returns the number of keys.
func (b *Block) Len() int {
	return len(b.node.Content) / 2
}

// MarshalYAML lets a Block be embedded in other YAML documents.
func (b *Block) MarshalYAML() (any, error) {
	return b.node, nil
}

// Marshal encodes the mapping without document delimiters.
// An empty block encodes to no bytes.
func (b *Block) Marshal() ([]byte, error) {
	if b.Len() == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b.node); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
