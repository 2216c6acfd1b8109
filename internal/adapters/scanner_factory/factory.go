package scanner_factory

import (
	"fmt"

	"kustomate/internal/adapters/cluster"
	"kustomate/internal/adapters/manifest"
	"kustomate/internal/core"
	"kustomate/internal/ports"
)

var _ ports.ScannerFactory = (*Factory)(nil)

// Factory builds cluster or manifest scanners on demand. The cluster
// connection is established lazily and shared between the scanner and the
// applier so a single command dials the API server once.
type Factory struct {
	configRepository core.ConfigRepository
	clusterScanner   *cluster.Scanner
}

func ProvideScannerFactory(configRepository core.ConfigRepository) *Factory {
	return &Factory{configRepository: configRepository}
}

func (f *Factory) ClusterScanner() (ports.ResourceScanner, error) {
	scanner, err := f.connect()
	if err != nil {
		return nil, err
	}
	return scanner, nil
}

func (f *Factory) ClusterApplier() (ports.PatchApplier, error) {
	scanner, err := f.connect()
	if err != nil {
		return nil, err
	}
	return scanner, nil
}

func (f *Factory) ManifestScanner(path string) (ports.ResourceScanner, error) {
	if path == "" {
		config, err := f.configRepository.LoadConfig()
		if err != nil {
			return nil, err
		}
		path = config.ManifestPath
	}
	if path == "" {
		return nil, fmt.Errorf("no manifest path given and none configured")
	}
	return manifest.NewScanner(path)
}

func (f *Factory) connect() (*cluster.Scanner, error) {
	if f.clusterScanner != nil {
		return f.clusterScanner, nil
	}

	config, err := f.configRepository.LoadConfig()
	if err != nil {
		return nil, err
	}

	scanner, err := cluster.NewScanner(config.Cluster.Kubeconfig, config.Cluster.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}

	f.clusterScanner = scanner
	return scanner, nil
}
