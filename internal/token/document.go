package token

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

// Document is a token set addressed by dotted paths (for example
// "colors.neutral.500"). The first path segment is the category. Documents
// are built once per run and treated as read-only afterwards.
type Document struct {
	tokens map[string]Token
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{tokens: make(map[string]Token)}
}

// Add inserts a token at the given dotted path. Adding to an occupied path
// or adding an invalid token is rejected.
func (d *Document) Add(path string, tok Token) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := tok.Validate(); err != nil {
		return reweaveerrors.NewValidationError(path, "invalid token", err)
	}
	if _, exists := d.tokens[path]; exists {
		return reweaveerrors.NewValidationError(path, "duplicate token path", nil)
	}
	d.tokens[path] = tok
	return nil
}

// Get returns the token at path.
func (d *Document) Get(path string) (Token, bool) {
	tok, ok := d.tokens[path]
	return tok, ok
}

// Len returns the number of tokens in the document.
func (d *Document) Len() int {
	return len(d.tokens)
}

// Paths returns every token path in lexical order.
func (d *Document) Paths() []string {
	paths := make([]string, 0, len(d.tokens))
	for p := range d.tokens {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Category returns the tokens whose path begins with the given category
// segment, keyed by path.
func (d *Document) Category(category string) map[string]Token {
	out := make(map[string]Token)
	prefix := category + "."
	for p, tok := range d.tokens {
		if strings.HasPrefix(p, prefix) {
			out[p] = tok
		}
	}
	return out
}

func validatePath(path string) error {
	if path == "" {
		return reweaveerrors.NewValidationError("path", "empty token path", nil)
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return reweaveerrors.NewValidationError("path", fmt.Sprintf("empty segment in path %q", path), nil)
		}
	}
	return nil
}

type leafRecord struct {
	Value       any    `yaml:"value" json:"value"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Tree renders the document as a nested map with {value, type, description?}
// leaves, the wire shape consumed by the generation layer.
func (d *Document) Tree() map[string]any {
	root := make(map[string]any)
	for _, path := range d.Paths() {
		tok := d.tokens[path]
		segments := strings.Split(path, ".")
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = leafRecord{
			Value:       tok.Value,
			Type:        string(tok.Type),
			Description: tok.Description,
		}
	}
	return root
}

// MarshalYAML serializes the document as its nested tree.
func (d *Document) MarshalYAML() (any, error) {
	return d.Tree(), nil
}

// ParseDocument decodes a serialized token tree back into a Document.
// A node is a leaf when it carries both "value" and "type" keys.
func ParseDocument(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, reweaveerrors.NewParseError("document", 0, err)
	}

	doc := NewDocument()
	if err := walkTree(doc, "", raw); err != nil {
		return nil, err
	}
	return doc, nil
}

func walkTree(doc *Document, prefix string, node map[string]any) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		child, ok := node[key].(map[string]any)
		if !ok {
			return reweaveerrors.NewValidationError(path, "expected mapping node", nil)
		}

		if isLeaf(child) {
			tok, err := leafToken(child)
			if err != nil {
				return reweaveerrors.NewValidationError(path, "invalid token leaf", err)
			}
			if err := doc.Add(path, tok); err != nil {
				return err
			}
			continue
		}

		if err := walkTree(doc, path, child); err != nil {
			return err
		}
	}
	return nil
}

func isLeaf(node map[string]any) bool {
	_, hasValue := node["value"]
	_, hasType := node["type"]
	return hasValue && hasType
}

func leafToken(node map[string]any) (Token, error) {
	typeName, _ := node["type"].(string)
	tok := Token{Type: Type(typeName), Value: normalizeValue(node["value"])}
	if desc, ok := node["description"].(string); ok {
		tok.Description = desc
	}
	if err := tok.Validate(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// normalizeValue widens YAML's integer decoding so every numeric token
// value, font weights included, carries a float64. Validate accepts both
// forms for weights.
func normalizeValue(v any) any {
	if i, ok := v.(int); ok {
		return float64(i)
	}
	return v
}
