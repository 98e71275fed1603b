package main

import "github.com/philipparndt/plate3mf/internal/cmd"

func main() {
	cmd.Parse()
}
