package main

import (
	"github.com/phil-mansfield/lhalotree/cmd/lhtree/cmd"
)

func main() {
	cmd.Execute()
}
