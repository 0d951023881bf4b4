// Command cosdata is the collection storage server: it loads
// configuration, opens the collection registry, and serves the vector
// ingestion boundary over HTTP.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cosdata-io/cosdata/collection"
	"github.com/cosdata-io/cosdata/internal/config"
	"github.com/cosdata-io/cosdata/internal/log"
)

func main() {
	cfg, err := config.Load(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed parsing config: %v\n", err)
		os.Exit(1)
	}

	log.InitLogger(cfg.LogLevel)
	instanceID := uuid.New()

	for _, w := range cfg.Validate() {
		level.Warn(log.Logger).Log("msg", w)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		level.Error(log.Logger).Log("msg", "failed to create data directory", "err", err)
		os.Exit(1)
	}

	registry, err := collection.OpenRegistry(cfg.RegistryPath)
	if err != nil {
		level.Error(log.Logger).Log("msg", "failed to open collection registry", "err", err)
		os.Exit(1)
	}
	defer registry.Close()

	handler := &collection.Handler{Ingester: &unimplementedIngester{}}
	router := handler.Router()
	router.Handle("/metrics", promhttp.Handler())

	level.Info(log.Logger).Log("msg", "starting cosdata", "instance", instanceID, "data_dir", cfg.DataDir)
	if err := http.ListenAndServe(":8080", router); err != nil {
		level.Error(log.Logger).Log("msg", "server exited", "err", err)
		os.Exit(1)
	}
}

// unimplementedIngester rejects every vector type, sparse included: no
// ingester wired through to the invertedindex package exists in this
// module.
type unimplementedIngester struct{}

func (*unimplementedIngester) Ingest(_ string, _ collection.CreateVectorDto) error {
	return collection.ErrIndexTypeNotImplemented
}
