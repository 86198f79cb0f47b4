package main

import "github.com/pushparaj09/medishift-ai/cmd"

func main() {
	cmd.Execute()
}
