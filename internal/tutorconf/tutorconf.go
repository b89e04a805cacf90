// SPDX-License-Identifier: MPL-2.0

package tutorconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the Tutor project configuration file,
// relative to the Tutor root.
const ConfigFileName = "config.yml"

var (
	// ErrConfigNotFound indicates the Tutor root has no config.yml.
	ErrConfigNotFound = errors.New("tutor configuration not found")

	// ErrNotAMapping indicates the configuration document is not a YAML mapping.
	ErrNotAMapping = errors.New("tutor configuration is not a mapping")
)

type (
	// Entry is a single top-level configuration setting.
	Entry struct {
		Key   string
		Value any
	}

	// Mapping holds the top-level Tutor settings in file order. Viper is not
	// usable here: it lowercases keys and discards insertion order, and both
	// are significant for package discovery.
	Mapping struct {
		entries []Entry
		index   map[string]int
	}
)

// Load reads and parses config.yml from the given Tutor root.
func Load(root string) (*Mapping, error) {
	path := filepath.Join(root, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML document into a Mapping. An empty document yields an
// empty Mapping; a non-mapping document is an error.
func Parse(data []byte) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}

	m := &Mapping{index: make(map[string]int)}

	// A document with no content (empty file, comments only) is a valid
	// empty configuration.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return m, nil
	}

	node := doc.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: found %s", ErrNotAMapping, kindName(node.Kind))
	}

	// Mapping nodes store key/value pairs as alternating entries in Content.
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoding value of %q: %w", keyNode.Value, err)
		}

		// Later duplicates win, matching YAML semantics, but the entry keeps
		// its original position.
		if pos, ok := m.index[keyNode.Value]; ok {
			m.entries[pos].Value = value
			continue
		}

		m.index[keyNode.Value] = len(m.entries)
		m.entries = append(m.entries, Entry{Key: keyNode.Value, Value: value})
	}

	return m, nil
}

// Entries returns the top-level settings in file order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Get returns the value for key and whether it is present.
func (m *Mapping) Get(key string) (any, bool) {
	pos, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[pos].Value, true
}

// Len returns the number of top-level settings.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// kindName translates a yaml.Kind into a human-readable word for error messages.
func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
