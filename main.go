package main

import "github.com/soclabs/dgahound/cmd"

func main() {
	cmd.Execute()
}
