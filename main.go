// main is the entry point for the orderscope CLI.
package main

import (
	"github.com/orderscope/orderscope/cmd"
	"github.com/orderscope/orderscope/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run orderscope", err)
	}
}
