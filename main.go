package main

import "github.com/jsphweid/patternmetrics/cmd"

func main() {
	cmd.Execute()
}
