package main

import "github.com/emrgen/papernote/cmd"

func main() {
	cmd.Execute()
}
