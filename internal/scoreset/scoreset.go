// Package scoreset reads and hashes ScoreSet files.
package scoreset

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/indicator"
)

// File holds a loaded ScoreSet with its source metadata.
type File struct {
	FilePath string
	Raw      []byte
	Hash     string
	Scores   diagnosis.ScoreSet
}

// Load reads a YAML or JSON score file and computes its SHA-256 hash.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scoreset.Load: %w", err)
	}
	scores, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scoreset.Load: %s: %w", path, err)
	}
	return &File{
		FilePath: path,
		Raw:      data,
		Hash:     Hash(data),
		Scores:   scores,
	}, nil
}

// Hash returns the "sha256:<hex>" digest of data.
func Hash(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// Parse decodes a mapping of indicator key to integer score, keeping
// document order. JSON input is accepted as a YAML subset.
func Parse(data []byte) (diagnosis.ScoreSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document: %w", diagnosis.ErrInvalidInput)
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of indicator to score: %w", root.Line, diagnosis.ErrInvalidInput)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("no scores: %w", diagnosis.ErrInvalidInput)
	}

	set := make(diagnosis.ScoreSet, 0, len(root.Content)/2)
	seen := make(map[string]int, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := resolve(root.Content[i]), resolve(root.Content[i+1])
		if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
			return nil, fmt.Errorf("line %d: invalid indicator key: %w", keyNode.Line, diagnosis.ErrInvalidInput)
		}
		key := keyNode.Value
		if line, dup := seen[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate indicator %q (first at line %d): %w", keyNode.Line, key, line, diagnosis.ErrInvalidInput)
		}
		seen[key] = keyNode.Line

		score, err := scoreValue(valNode)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", valNode.Line, key, err)
		}
		set = append(set, diagnosis.Entry{Key: key, Score: score})
	}
	return set, nil
}

func scoreValue(n *yaml.Node) (int, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("score must be a number: %w", diagnosis.ErrInvalidInput)
	}
	switch n.Tag {
	case "!!int":
		var v int
		if err := n.Decode(&v); err != nil {
			return 0, fmt.Errorf("score %q: %v: %w", n.Value, err, diagnosis.ErrInvalidInput)
		}
		if !diagnosis.InRange(v) {
			return 0, outOfBounds(n.Value)
		}
		return v, nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("score %q is not a number: %w", n.Value, diagnosis.ErrInvalidInput)
		}
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("score %q must be an integer: %w", n.Value, diagnosis.ErrInvalidInput)
		}
		if f < diagnosis.MinScoreValue || f > diagnosis.MaxScoreValue {
			return 0, outOfBounds(n.Value)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("score %q is not a number: %w", n.Value, diagnosis.ErrInvalidInput)
	}
}

func outOfBounds(value string) error {
	return fmt.Errorf("score %s outside [%d, %d]: %w", value, diagnosis.MinScoreValue, diagnosis.MaxScoreValue, diagnosis.ErrInvalidInput)
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Default returns the demonstration ScoreSet shown when no file is given.
func Default() diagnosis.ScoreSet {
	return diagnosis.ScoreSet{
		{Key: string(indicator.KeyLGPD), Score: 2},
		{Key: string(indicator.KeyDigitalizacao), Score: 4},
		{Key: string(indicator.KeyArrecadacao), Score: 3},
		{Key: string(indicator.KeyTransparencia), Score: 4},
		{Key: string(indicator.KeyParticipacao), Score: 2},
	}
}

// Marshal encodes set as a YAML mapping in set order.
func Marshal(set diagnosis.ScoreSet) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range set {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(e.Score)},
		)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("scoreset.Marshal: %w", err)
	}
	return out, nil
}
