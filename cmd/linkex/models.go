package main

import (
	"fmt"

	"github.com/fwojciec/linkex/ollama"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	if err := deps.Models.Heartbeat(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "Ollama: not reachable (%s)\n", message(err))
		fmt.Fprintln(deps.Stderr, "Hint: Start Ollama with 'ollama serve'; showing common models")
		for _, name := range ollama.FallbackModels {
			fmt.Fprintln(deps.Stdout, name)
		}
		return nil
	}
	fmt.Fprintln(deps.Stderr, "Ollama: running")

	models, fromServer := ollama.AvailableModels(deps.Ctx, deps.Models)
	if !fromServer {
		fmt.Fprintln(deps.Stderr, "warning: no models listed by Ollama (pull one with 'ollama pull'); showing common models")
	}
	for _, name := range models {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
