package main

import (
	"github.com/Rakhulsr/asili-market/app/cmd"
)

func main() {
	cmd.RunCli()
}
