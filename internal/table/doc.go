// Package table reads and writes keyed string tables: flat files that map
// translation keys to strings for one language. It knows how to find table
// files under a language directory and how to parse and render the
// supported file formats (PHP arrays, JSON, YAML and TOML).
package table
