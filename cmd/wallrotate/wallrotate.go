package main

import (
	"github.com/matjam/wallrotate/internal/cli"
)

func main() {
	cli.Execute()
}
