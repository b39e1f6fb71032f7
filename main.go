package main

import "stage-alts/cmd"

func main() {
	cmd.Execute()
}
