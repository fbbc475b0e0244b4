package main

import "github.com/jsphweid/fretwork/cmd"

func main() {
	cmd.Execute()
}
