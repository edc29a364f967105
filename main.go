package main

import "github.com/example/studytrack/cmd"

func main() {
	cmd.Execute()
}
