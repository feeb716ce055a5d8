package main

import "buildflow-backend/cmd"

func main() {
	cmd.Execute()
}
