package main

import "github.com/obadah/phonestore/cmd"

func main() {
	cmd.Execute()
}
