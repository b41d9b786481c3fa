package sitedef

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk YAML shape:
//
//	sites:
//	  "S=3/2":
//	    dimension: 4
//	    states: {Up: 1, Dn: 4}
//	    operators:
//	      Sz: [[1.5, 0, 0, 0], ...]
//	    fermionic: [C]
type yamlFile struct {
	Sites map[string]yamlSite `yaml:"sites"`
}

type yamlSite struct {
	Dimension int                    `yaml:"dimension"`
	States    map[string]int         `yaml:"states,omitempty"`
	Operators map[string][][]float64 `yaml:"operators,omitempty"`
	Fermionic []string               `yaml:"fermionic,omitempty"`
}

// FromYAML decodes site definitions from YAML. Definitions are returned
// sorted by tag so callers see a deterministic order.
// Unknown fields are rejected: a typo like "operatores" would otherwise
// install a definition with no operators and surface much later as a
// resolution failure.
func FromYAML(data []byte) ([]SiteDef, error) {
	var file yamlFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("sitedef: decode yaml: %w", err)
	}
	if len(file.Sites) == 0 {
		return nil, fmt.Errorf("sitedef: no sites found in yaml definition")
	}

	defs := make([]SiteDef, 0, len(file.Sites))
	for tag, s := range file.Sites {
		defs = append(defs, SiteDef{
			Tag:       tag,
			Dimension: s.Dimension,
			States:    s.States,
			Operators: s.Operators,
			Fermionic: s.Fermionic,
		})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Tag < defs[j].Tag })
	return defs, nil
}
