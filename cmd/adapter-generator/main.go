// Command adapter-generator generates adapters ahead of time from an
// adapters.yaml file. It is meant to be run through go generate:
//
//	//go:generate go run adapter-generator/cmd/adapter-generator gen -c adapters.yaml
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
