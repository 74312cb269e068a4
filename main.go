package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"tanukidns/config"
	"tanukidns/server"
	"tanukidns/stats"
	"tanukidns/web"
	"tanukidns/zone"
)

func main() {
	cfg := config.Load()
	defer glog.Flush()

	store, err := zone.OpenStore(cfg.DataDir)
	if err != nil {
		glog.Fatalf("Failed to open zone store: %v", err)
	}

	records, err := store.List()
	if err != nil {
		glog.Fatalf("Failed to load zone records: %v", err)
	}
	if len(records) == 0 {
		// Seed a fresh install so the server answers something.
		seed := zone.Record{Name: "example.com", Address: "93.184.216.34"}
		if err := store.Put(seed); err != nil {
			glog.Fatalf("Failed to seed zone store: %v", err)
		}
		records = []zone.Record{seed}
	}

	table, err := zone.NewTable(records)
	if err != nil {
		glog.Fatalf("Failed to build zone table: %v", err)
	}
	glog.Infof("Loaded %d zone record(s)", table.Len())

	statsCollector := stats.New()

	dnsServer := server.New(cfg.DNSPort, table, statsCollector)
	webServer := web.New(cfg.WebPort, statsCollector, store, dnsServer)

	if err := dnsServer.Start(); err != nil {
		glog.Fatalf("Failed to start DNS server: %v", err)
	}

	go func() {
		if err := webServer.Start(); err != nil {
			glog.Fatalf("Failed to start web server: %v", err)
		}
	}()

	glog.Infof("tanukidns started: DNS on udp/%d, dashboard on http://localhost:%d", cfg.DNSPort, cfg.WebPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	glog.Info("Shutting down...")
	dnsServer.Stop()
}
