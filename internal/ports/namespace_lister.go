package ports

// NamespaceLister enumerates the namespaces visible to a scanner. Only the
// cluster scanner implements it; manifest scanning has no namespace catalog.
type NamespaceLister interface {
	Namespaces() ([]string, error)
}
