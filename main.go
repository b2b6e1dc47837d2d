package main

import "github.com/notargets/gosph/cmd"

func main() {
	cmd.Execute()
}
