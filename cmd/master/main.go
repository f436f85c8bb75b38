// Command master runs the host directory that servers list themselves on.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/automoto/ordnance/master"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Listing TTL before expiry")
	flag.Parse()

	reg := master.NewRegistry(*ttl, nil)
	stop := make(chan struct{})
	defer close(stop)
	go reg.Sweep(30*time.Second, stop)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[master] starting on %s (TTL=%s)", addr, *ttl)
	if err := http.ListenAndServe(addr, master.NewHandler(reg)); err != nil {
		log.Fatalf("[master] fatal: %v", err)
	}
}
