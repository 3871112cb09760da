package main

import "brewnet-backend/cmd"

func main() {
	cmd.Run()
}
