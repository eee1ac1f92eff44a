package main

import "restaurante/cmd"

func main() {
	cmd.Execute()
}
