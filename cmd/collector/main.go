// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/app"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/config"
)

func main() {
	configPath := flag.String("config", "./automata_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting automata gesture collector (serial CSV → sqlite)")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunCollector(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
