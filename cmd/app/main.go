package main

import "containerops/cmd"

func main() {
	cmd.Execute()
}
