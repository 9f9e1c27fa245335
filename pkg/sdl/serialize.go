package sdl

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"veritas-hq/praetor/pkg/sdl/ast"
	sdlerrors "veritas-hq/praetor/pkg/sdl/errors"
)

// Serialization is pass-through: documents and statutes round-trip
// through the generic JSON and YAML serializers with no grammar logic
// involved. Errors from the serializers surface as serialization-kind
// SDL errors.

// DocumentToJSON serializes a document to indented JSON.
func DocumentToJSON(doc *ast.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, sdlerrors.NewSerialization("JSON encoding", err)
	}
	return data, nil
}

// DocumentFromJSON deserializes a document from JSON.
func DocumentFromJSON(data []byte) (*ast.Document, error) {
	var doc ast.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, sdlerrors.NewSerialization("JSON decoding", err)
	}
	return &doc, nil
}

// DocumentToYAML serializes a document to YAML.
func DocumentToYAML(doc *ast.Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, sdlerrors.NewSerialization("YAML encoding", err)
	}
	return data, nil
}

// DocumentFromYAML deserializes a document from YAML.
func DocumentFromYAML(data []byte) (*ast.Document, error) {
	var doc ast.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sdlerrors.NewSerialization("YAML decoding", err)
	}
	return &doc, nil
}

// StatuteToJSON serializes a single statute node to indented JSON.
func StatuteToJSON(statute *ast.StatuteNode) ([]byte, error) {
	data, err := json.MarshalIndent(statute, "", "  ")
	if err != nil {
		return nil, sdlerrors.NewSerialization("JSON encoding", err)
	}
	return data, nil
}

// StatuteFromJSON deserializes a single statute node from JSON.
func StatuteFromJSON(data []byte) (*ast.StatuteNode, error) {
	var statute ast.StatuteNode
	if err := json.Unmarshal(data, &statute); err != nil {
		return nil, sdlerrors.NewSerialization("JSON decoding", err)
	}
	return &statute, nil
}

// StatuteToYAML serializes a single statute node to YAML.
func StatuteToYAML(statute *ast.StatuteNode) ([]byte, error) {
	data, err := yaml.Marshal(statute)
	if err != nil {
		return nil, sdlerrors.NewSerialization("YAML encoding", err)
	}
	return data, nil
}

// StatuteFromYAML deserializes a single statute node from YAML.
func StatuteFromYAML(data []byte) (*ast.StatuteNode, error) {
	var statute ast.StatuteNode
	if err := yaml.Unmarshal(data, &statute); err != nil {
		return nil, sdlerrors.NewSerialization("YAML decoding", err)
	}
	return &statute, nil
}
