package main

import "github.com/cerberussg/songmeta/cmd"

func main() {
	cmd.Execute()
}
