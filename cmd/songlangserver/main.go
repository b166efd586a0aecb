// Command songlangserver hosts SongLang sessions over HTTP, one
// interpreter per session created by POST /sessions.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/lowtek7/songlang/internal/config"
	"github.com/lowtek7/songlang/internal/httpapi"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults built in if omitted)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	server := httpapi.NewServer(cfg.CorsOrigins, cfg.RngSeed1, cfg.RngSeed2, cfg.ScriptDir)

	log.Printf("songlangserver listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, server); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
