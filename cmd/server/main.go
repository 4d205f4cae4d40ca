package main

import (
	"github.com/OFFIS-RIT/feedlens/internal/config"
	"github.com/OFFIS-RIT/feedlens/internal/server"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()
	cfg.InitLogger("server")

	server.Init(cfg)
}
