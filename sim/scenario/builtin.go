package scenario

import (
	_ "embed"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the bundled example scenario: the fixed cost of a center,
// the variable and storage costs of two products and the optimum inventory
// level of a produced product.
func Builtin() (*Scenario, error) {
	return ParseScenario(builtinYAML)
}
