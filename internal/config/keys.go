package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// configKeys maps a folded key (lower case, underscores removed) to its
// canonical name, so PascalCase JSON such as "ContentOutputDirectory"
// decodes like "content_output_directory".
var configKeys = foldKeys(
	"driver", "host", "database", "username", "password", "tls",
	"table_prefix", "content_output_directory", "archive_output_file_path",
	"statuses", "jobs", "patterns",
)

var patternKeys = foldKeys("needle", "substitute")

func foldKeys(keys ...string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		m[foldKey(k)] = k
	}
	return m
}

func foldKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

// canonicalizeKeys rewrites known top-level and pattern keys in doc to their
// canonical spelling. Pattern category names and unknown keys are left
// alone, so strict decoding still reports typos.
func canonicalizeKeys(doc *yaml.Node) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return
	}
	root := doc.Content[0]
	renameKeys(root, configKeys)

	patterns := mappingValue(root, "patterns")
	if patterns == nil || patterns.Kind != yaml.MappingNode {
		return
	}
	for i := 1; i < len(patterns.Content); i += 2 {
		list := patterns.Content[i]
		if list.Kind != yaml.SequenceNode {
			continue
		}
		for _, entry := range list.Content {
			renameKeys(entry, patternKeys)
		}
	}
}

func renameKeys(m *yaml.Node, known map[string]string) {
	if m.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i < len(m.Content); i += 2 {
		key := m.Content[i]
		if canonical, ok := known[foldKey(key.Value)]; ok {
			key.Value = canonical
		}
	}
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
