package main

import "github.com/opensdraw/lcad/cmd"

func main() {
	cmd.Execute()
}
