package main

import (
	"log"
	"os"
)

var version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)

	if err := newRootCmd().Execute(); err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}
}
