package main

import (
	"redlytics/internal/cmd"
)

func main() {
	cmd.Run()
}
