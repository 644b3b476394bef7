package main

import "github.com/meslamib3/storiesdb/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
