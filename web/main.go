package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-tile-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes-dir", "scenes", "Directory scanned for JSON scene descriptions")
	flag.Parse()
	defer glog.Flush()

	webServer := server.NewServer(*port, *scenesDir)

	glog.Infof("Tile path tracer web server")
	glog.Infof("Try http://localhost:%d/api/scenes", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
