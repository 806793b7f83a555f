package filter

import "fmt"

// Config is the YAML shape of one filter stage: `type` selects the variant,
// the remaining fields are interpreted per type. This mirrors the tagged
// `#[serde(tag = "type")]` enum from the original FilterType.
type Config struct {
	Type     string `yaml:"type"`
	JSONPath string `yaml:"jsonpath,omitempty"`
	Value    string `yaml:"value,omitempty"`
}

// Build constructs a Filter from its YAML configuration.
func (c Config) Build() (Filter, error) {
	switch c.Type {
	case "extract_json":
		return ExtractJson{Path: c.JSONPath}, nil
	case "to_upper":
		return ToUpper{}, nil
	case "to_lower":
		return ToLower{}, nil
	case "prepend":
		return Prepend{Value: c.Value}, nil
	case "append":
		return Append{Value: c.Value}, nil
	case "to_text":
		return ToText{}, nil
	case "to_json":
		return ToJson{}, nil
	default:
		return nil, fmt.Errorf("filter: unknown type %q", c.Type)
	}
}

// BuildChain constructs a Chain from its YAML configuration, in order.
func BuildChain(configs []Config) (Chain, error) {
	chain := make(Chain, 0, len(configs))
	for i, c := range configs {
		f, err := c.Build()
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		chain = append(chain, f)
	}
	return chain, nil
}
