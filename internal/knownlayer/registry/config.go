package registry

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mapportal/internal/catalog/models"
	"mapportal/internal/knownlayer"
	"mapportal/internal/knownlayer/selectors"
)

// Selector types accepted in the layers file.
const (
	SelectorIdentifier     = "identifier"
	SelectorKeyword        = "keyword"
	SelectorOnlineResource = "online_resource"
)

// File is the YAML document describing the known layer registry.
type File struct {
	Layers []LayerConfig `yaml:"layers"`
}

// LayerConfig describes one known layer.
type LayerConfig struct {
	ID          string         `yaml:"id"`
	Kind        string         `yaml:"kind"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Group       string         `yaml:"group"`
	Order       string         `yaml:"order"`
	IconURL     string         `yaml:"icon_url"`
	ProxyURL    string         `yaml:"proxy_url"`
	Hidden      bool           `yaml:"hidden"`
	Selector    SelectorConfig `yaml:"selector"`
}

// SelectorConfig is the union of every selector type's settings; Type picks
// which fields apply.
type SelectorConfig struct {
	Type              string   `yaml:"type"`
	BelongIDs         []string `yaml:"belong_ids"`
	RelatedIDs        []string `yaml:"related_ids"`
	Keywords          []string `yaml:"keywords"`
	RelatedKeywords   []string `yaml:"related_keywords"`
	Protocol          string   `yaml:"protocol"`
	LayerNames        []string `yaml:"layer_names"`
	RelatedLayerNames []string `yaml:"related_layer_names"`
	ServiceEndpoints  []string `yaml:"service_endpoints"`
	IncludeEndpoints  bool     `yaml:"include_endpoints"`
}

// LoadFile reads a registry from a YAML file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layers file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a registry from YAML. Layer order follows the document.
func Load(r io.Reader) (*Registry, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode layers file: %w", err)
	}
	return Build(doc)
}

// Build constructs a registry from an already decoded document.
func Build(doc File) (*Registry, error) {
	reg := &Registry{}
	for i, lc := range doc.Layers {
		layer, err := lc.build()
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, lc.ID, err)
		}
		if err := reg.Add(layer); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (lc LayerConfig) build() (*knownlayer.KnownLayer, error) {
	sel, err := lc.Selector.build()
	if err != nil {
		return nil, err
	}
	return knownlayer.New(lc.ID, sel,
		knownlayer.WithKind(knownlayer.ParseKind(lc.Kind)),
		knownlayer.WithPresentation(knownlayer.Presentation{
			Name:        lc.Name,
			Description: lc.Description,
			Group:       lc.Group,
			Order:       lc.Order,
			IconURL:     lc.IconURL,
			ProxyURL:    lc.ProxyURL,
			Hidden:      lc.Hidden,
		}),
	)
}

func (sc SelectorConfig) build() (knownlayer.Selector, error) {
	switch strings.ToLower(strings.TrimSpace(sc.Type)) {
	case SelectorIdentifier:
		return selectors.NewIdentifierSelector(sc.BelongIDs, sc.RelatedIDs), nil
	case SelectorKeyword:
		return selectors.NewKeywordSelector(sc.Keywords, sc.RelatedKeywords), nil
	case SelectorOnlineResource:
		protocol := models.ParseProtocol(sc.Protocol)
		if protocol == models.ProtocolUnsupported {
			return nil, fmt.Errorf("unsupported protocol %q", sc.Protocol)
		}
		return selectors.NewOnlineResourceSelector(selectors.OnlineResourceConfig{
			Protocol:          protocol,
			LayerNames:        sc.LayerNames,
			RelatedLayerNames: sc.RelatedLayerNames,
			ServiceEndpoints:  sc.ServiceEndpoints,
			IncludeEndpoints:  sc.IncludeEndpoints,
		}), nil
	case "":
		return nil, fmt.Errorf("selector type is required")
	default:
		return nil, fmt.Errorf("unknown selector type %q", sc.Type)
	}
}
