package main

import "github.com/theirongolddev/costdash/cmd"

func main() {
	cmd.Execute()
}
