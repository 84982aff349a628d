package main

import "github.com/mouse-blink/locov/cmd"

func main() {
	cmd.Execute()
}
