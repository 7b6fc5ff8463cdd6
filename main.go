package main

import "github.com/mj1618/desktop-launcher/cmd"

func main() {
	cmd.Execute()
}
