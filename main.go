package main

import "github.com/harrisonrobin/classwork/cmd"

func main() {
	cmd.Execute()
}
