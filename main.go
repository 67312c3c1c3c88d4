package main

import "github.com/chriserin/xtab/cmd"

func main() {
	cmd.Execute()
}
