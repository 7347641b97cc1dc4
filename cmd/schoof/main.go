package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/GottfriedHerold/Schoof/cmd/schoof/root"
)

func main() {
	err := root.GetRootCmd().Execute()
	if err != nil {
		log.Fatalf("schoof failed: %s", err.Error())
	}
}
