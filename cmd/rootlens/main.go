// ABOUTME: Entry point of the rootlens command line tool
// ABOUTME: Delegates to the cobra command tree in package cmd

package main

import "github.com/prateek/rootlens/cmd"

func main() {
	cmd.Execute()
}
