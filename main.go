package main

import "github.com/towerledger/backend/cmd"

func main() {
	cmd.Execute()
}
