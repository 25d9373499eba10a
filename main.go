package main

import "sysc/cmd"

func main() {
	cmd.Execute()
}
