package main

import "kustomate/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
