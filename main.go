package main

import "github.com/provhub/provctl/cmd"

func main() {
	cmd.Execute()
}
