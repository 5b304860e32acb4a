package main

import (
	"github.com/AzielCF/az-cast/cmd"
)

func main() {
	cmd.Execute()
}
