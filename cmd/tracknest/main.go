package main

import "tracknest/cmd/tracknest/root"

func main() {
	root.Execute()
}
