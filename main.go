package main

import "github.com/imagekit-tools/cli/cmd"

func main() {
	cmd.Execute()
}
