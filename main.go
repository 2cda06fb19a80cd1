package main

import "github.com/gaurav-prasanna/briefpipe/cmd"

func main() {
	cmd.Execute()
}
