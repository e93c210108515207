// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ontology

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/loregraph/loregraph/internal/graph"
)

// schemaFile is the on-disk YAML shape of a schema declaration. Term
// names may be CURIEs resolved against the file's prefixes merged over
// the built-in ones.
type schemaFile struct {
	Prefixes   map[string]string `yaml:"prefixes"`
	Classes    []classDecl       `yaml:"classes"`
	Properties []propertyDecl    `yaml:"properties"`
}

type classDecl struct {
	Name       string   `yaml:"name"`
	SubClassOf []string `yaml:"sub_class_of"`
}

type propertyDecl struct {
	Name          string   `yaml:"name"`
	SubPropertyOf []string `yaml:"sub_property_of"`
	Symmetric     bool     `yaml:"symmetric"`
	InverseOf     string   `yaml:"inverse_of"`
}

// LoadFile reads a schema declaration from a YAML file and returns a
// validated registry.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}

	prefixes := make(map[string]string, len(Prefixes)+len(file.Prefixes))
	for k, v := range Prefixes {
		prefixes[k] = v
	}
	for k, v := range file.Prefixes {
		prefixes[k] = v
	}

	r := NewRegistry()
	for _, c := range file.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("schema file %s: class declaration without a name", path)
		}
		sub := graph.Resource(expandWith(prefixes, c.Name))
		for _, super := range c.SubClassOf {
			r.AddSubClass(sub, graph.Resource(expandWith(prefixes, super)))
		}
	}
	for _, p := range file.Properties {
		if p.Name == "" {
			return nil, fmt.Errorf("schema file %s: property declaration without a name", path)
		}
		prop := graph.Property(expandWith(prefixes, p.Name))
		for _, super := range p.SubPropertyOf {
			r.AddSubProperty(prop, graph.Property(expandWith(prefixes, super)))
		}
		if p.Symmetric {
			r.SetSymmetric(prop)
		}
		if p.InverseOf != "" {
			r.SetInverse(prop, graph.Property(expandWith(prefixes, p.InverseOf)))
		}
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("validating schema file %s: %w", path, err)
	}
	return r, nil
}

func expandWith(prefixes map[string]string, curie string) string {
	for i := 0; i < len(curie); i++ {
		if curie[i] == ':' {
			if base, ok := prefixes[curie[:i]]; ok {
				return base + curie[i+1:]
			}
			return curie
		}
	}
	return curie
}
