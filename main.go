package main

import "planetcam/cmd"

func main() {
	cmd.Execute()
}
