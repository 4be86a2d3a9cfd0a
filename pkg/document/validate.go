package document

import "fmt"

// Result is the outcome of structural validation: whether the document is
// acceptable plus one human-readable message per violation
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate performs structural-only checks on a parsed design document and
// collects every violation rather than failing fast. It never rejects a
// document for unknown fields; only missing required structure counts.
func Validate(doc map[string]any) Result {
	var errs []string

	if doc == nil {
		return Result{IsValid: false, Errors: []string{"document is null"}}
	}

	if rawNodes, present := doc["nodes"]; present {
		nodes, ok := rawNodes.([]any)
		if !ok {
			errs = append(errs, "nodes must be an array")
		} else {
			for i, raw := range nodes {
				m, ok := raw.(map[string]any)
				if !ok {
					errs = append(errs, fmt.Sprintf("node %d is not an object", i))
					continue
				}
				if _, ok := m["id"]; !ok {
					errs = append(errs, fmt.Sprintf("node %d is missing id", i))
				}
				if _, ok := m["position"]; !ok {
					errs = append(errs, fmt.Sprintf("node %d is missing position", i))
				}
			}
		}
	}

	if rawEdges, present := doc["edges"]; present {
		edges, ok := rawEdges.([]any)
		if !ok {
			errs = append(errs, "edges must be an array")
		} else {
			for i, raw := range edges {
				m, ok := raw.(map[string]any)
				if !ok {
					errs = append(errs, fmt.Sprintf("edge %d is not an object", i))
					continue
				}
				if _, ok := m["id"]; !ok {
					errs = append(errs, fmt.Sprintf("edge %d is missing id", i))
				}
				if _, ok := m["source"]; !ok {
					errs = append(errs, fmt.Sprintf("edge %d is missing source", i))
				}
				if _, ok := m["target"]; !ok {
					errs = append(errs, fmt.Sprintf("edge %d is missing target", i))
				}
			}
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}
