package referrers

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for dataset loading. Loading fails fast: a classifier
// built on a broken dataset would silently misattribute traffic site-wide.
var (
	// ErrInvalidDataset indicates the dataset is not valid YAML or does not
	// follow the medium -> provider -> config schema.
	ErrInvalidDataset = errors.New("invalid referrer dataset")

	// ErrEmptyDataset indicates the dataset parsed but contained no domains.
	ErrEmptyDataset = errors.New("empty referrer dataset")
)

//go:embed data/referers.yaml
var bundled []byte

// providerConfig is the per-provider block of the dataset.
type providerConfig struct {
	Domains    []string `yaml:"domains"`
	Parameters []string `yaml:"parameters,omitempty"`
}

// Parse builds a KnowledgeBase from YAML dataset bytes. The schema is a
// mapping of medium -> provider -> {domains, parameters}. Document order
// is preserved during indexing, so when a domain appears more than once
// the last entry wins.
func Parse(data []byte) (*KnowledgeBase, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDataset
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of mediums", ErrInvalidDataset)
	}

	kb := &KnowledgeBase{index: make(map[string]Classification)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		mediumNode := root.Content[i]
		providersNode := root.Content[i+1]
		if providersNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: medium %q must map providers", ErrInvalidDataset, mediumNode.Value)
		}
		medium := Medium(mediumNode.Value)
		for j := 0; j+1 < len(providersNode.Content); j += 2 {
			name := providersNode.Content[j].Value
			var cfg providerConfig
			if err := providersNode.Content[j+1].Decode(&cfg); err != nil {
				return nil, fmt.Errorf("%w: provider %q: %v", ErrInvalidDataset, name, err)
			}
			c := Classification{
				Source:     name,
				Medium:     medium,
				TermParams: cfg.Parameters,
			}
			for _, d := range cfg.Domains {
				d = strings.ToLower(strings.TrimSpace(d))
				if d == "" {
					continue
				}
				kb.index[d] = c
			}
		}
	}

	if len(kb.index) == 0 {
		return nil, ErrEmptyDataset
	}
	return kb, nil
}

// Load reads a dataset file from disk and parses it. This is the hook for
// externally refreshed datasets; the file format matches Parse.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read referrer dataset: %w", err)
	}
	return Parse(data)
}

// Bundled builds a KnowledgeBase from the dataset shipped with the package.
func Bundled() (*KnowledgeBase, error) {
	return Parse(bundled)
}
