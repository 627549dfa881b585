package main

import "github.com/kamusis/colorname-cli/cmd"

func main() {
	cmd.Execute()
}
