package main

import "github.com/papapumpkin/beacon/cmd"

func main() {
	cmd.Execute()
}
