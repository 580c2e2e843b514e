package main

import "github.com/nikogura/candidate-scorer/cmd"

func main() {
	cmd.Execute()
}
