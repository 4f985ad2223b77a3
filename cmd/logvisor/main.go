package main

import "github.com/abyssdigger/logvisor/cmd/logvisor/cmd"

func main() {
	cmd.Execute()
}
