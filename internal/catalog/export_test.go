package catalog

// Exported constants for testing.
const (
	TestCorruptSuffix = corruptSuffix
	TestFilePerms     = filePerms
)

// SetWriteFile replaces the function used to persist the catalog.
func (c *Catalog) SetWriteFile(fn func(path string, data []byte) error) {
	c.writeFile = fn
}
