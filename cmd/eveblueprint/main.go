package main

import (
	"github.com/ganonim/eve-blueprint-master/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
