// Command circlestark-demo builds a small constraint system, proves it,
// and verifies the resulting proof, printing each step to stderr. It
// takes no flags: this is a thin constraint-source client exercising the
// public pkg/circlestark surface, not a CLI tool in its own right.
package main

import (
	"fmt"
	"os"

	"github.com/vybium/circle-stark/pkg/circlestark"
)

func main() {
	// A perfect-fifth interval: source_ratio = 1.5.
	cs, err := circlestark.NewConstraintSystem([]float64{1.5})
	if err != nil {
		fatal(fmt.Sprintf("building constraint system: %v", err))
	}

	cfg := circlestark.DefaultConfig()

	logStderr("proving...")
	proof, err := circlestark.Prove(cs, cfg)
	if err != nil {
		fatal(fmt.Sprintf("prove: %v", err))
	}

	logStderr("verifying...")
	if err := circlestark.Verify(cs, cfg, proof); err != nil {
		fatal(fmt.Sprintf("verify: %v", err))
	}

	logStderr("proof accepted")
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "circlestark-demo:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
