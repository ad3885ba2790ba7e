package main

import "github.com/agentic-research/roadmap-content/cmd"

func main() {
	cmd.Execute()
}
