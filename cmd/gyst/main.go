package main

import "gyst/cmd/gyst/root"

func main() {
	root.Execute()
}
