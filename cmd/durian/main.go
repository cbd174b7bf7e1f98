package main

import "github.com/elvisding0307/durian-cli/cmd/durian/cmd"

func main() {
	cmd.Execute()
}
