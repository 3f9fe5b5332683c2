package stage

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in catalog: a four-stage walkthrough of a
// natural-language Solana test being parsed, executed by an agent and
// recorded on chain. All payloads are illustrative.
func Demo() (*Catalog, error) {
	c, err := Parse(demoYAML)
	if err != nil {
		return nil, fmt.Errorf("load built-in demo: %w", err)
	}
	return c, nil
}
