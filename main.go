package main

import "github.com/wundergraph/cqir/cmd"

func main() {
	cmd.Execute()
}
