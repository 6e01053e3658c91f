package main

import "github.com/Jai-Chauhan/SCT-DS-2/cmd"

func main() {
	cmd.Execute()
}
