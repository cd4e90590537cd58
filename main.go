package main

import "github.com/KaramelBytes/popclean/cmd"

func main() {
	cmd.Execute()
}
