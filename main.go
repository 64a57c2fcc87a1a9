package main

import "github.com/sealkit/skseal/cmd"

func main() {
	cmd.Execute()
}
