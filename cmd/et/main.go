package main

import (
	"github.com/gotvc/et/src/etcmd"
)

func main() {
	etcmd.Main()
}
