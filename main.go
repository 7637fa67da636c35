package main

import "github.com/keyclick/keyclick/cmd"

func main() {
	cmd.Execute()
}
