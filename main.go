package main

import "github.com/xvierd/pomo-cli/cmd"

func main() {
	cmd.Execute()
}
