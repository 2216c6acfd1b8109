package ports

// ScannerFactory builds resource scanners at runtime. Which scanner is
// needed depends on command flags, so construction is deferred until the
// handler knows whether it targets the cluster or local manifests.
type ScannerFactory interface {
	ClusterScanner() (ResourceScanner, error)
	ManifestScanner(path string) (ResourceScanner, error)
	// ClusterApplier returns the applier bound to the same cluster
	// connection the cluster scanner uses.
	ClusterApplier() (PatchApplier, error)
}
