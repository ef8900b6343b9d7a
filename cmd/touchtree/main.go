// Command touchtree probes, scripts and views pointer hit chains for node
// trees described in YAML, and looks up media asset metadata.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
