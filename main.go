package main

import "github.com/naka-gawa/activity-box/cmd"

func main() {
	cmd.Execute()
}
