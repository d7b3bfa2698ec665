/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package main

import "github.com/cubeof2/jenness-battle-simulator/cmd"

func main() {
	cmd.Execute()
}
