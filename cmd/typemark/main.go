package main

import (
	"github.com/typemark/typemark/cmd/typemark/cmd"
)

func main() {
	cmd.Execute()
}
