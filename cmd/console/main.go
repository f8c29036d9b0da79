package main

import (
	"log"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/app"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/config"
)

func main() {
	log.Println("starting automata console (MQTT subscriber)")

	if err := config.InitGlobal("automata_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsole(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
