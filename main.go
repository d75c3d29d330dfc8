package main

import "github.com/rmesquita/bjjelo/cmd"

func main() {
	cmd.Execute()
}
