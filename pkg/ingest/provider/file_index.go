package provider

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// IndexFile is the YAML document read by FileIndexProvider.
//
//	indices:
//	  MY BASKET: [AAPL, MSFT]
//	listings: [GOOG]
type IndexFile struct {
	Indices  map[string][]string `yaml:"indices"`
	Listings []string            `yaml:"listings"`
}

// FileIndexProvider serves user-declared indices from a YAML file. Every symbol
// that appears in any index, plus the optional extra listings, counts as listed.
type FileIndexProvider struct {
	path    string
	indices map[string][]string
	names   []string
	listed  []string
}

// NewFileIndexProvider loads the index file at path.
func NewFileIndexProvider(path string) (*FileIndexProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var file IndexFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse index file %s: %w", path, err)
	}

	return NewFileIndexProviderFromIndexFile(path, file), nil
}

// NewFileIndexProviderFromIndexFile builds a provider from an already decoded document.
func NewFileIndexProviderFromIndexFile(path string, file IndexFile) *FileIndexProvider {
	p := &FileIndexProvider{
		path:    path,
		indices: make(map[string][]string, len(file.Indices)),
		names:   make([]string, 0, len(file.Indices)),
		listed:  nil,
	}

	seen := make(map[string]bool)
	addListed := func(symbol string) {
		if !seen[symbol] {
			seen[symbol] = true
			p.listed = append(p.listed, symbol)
		}
	}

	for name, symbols := range file.Indices {
		key := strings.ToUpper(strings.TrimSpace(name))

		normalized := make([]string, 0, len(symbols))
		for _, symbol := range symbols {
			s := strings.ToUpper(strings.TrimSpace(symbol))
			if s == "" {
				continue
			}

			normalized = append(normalized, s)
		}

		p.indices[key] = normalized
		p.names = append(p.names, key)
	}

	sort.Strings(p.names)

	for _, name := range p.names {
		for _, symbol := range p.indices[name] {
			addListed(symbol)
		}
	}

	for _, symbol := range file.Listings {
		if s := strings.ToUpper(strings.TrimSpace(symbol)); s != "" {
			addListed(s)
		}
	}

	return p
}

// Name implements IndexProvider.
func (p *FileIndexProvider) Name() string {
	return string(IndexSourceFile)
}

// Constituents implements IndexProvider.
func (p *FileIndexProvider) Constituents(_ context.Context, index string) ([]string, error) {
	symbols, ok := p.indices[strings.ToUpper(strings.TrimSpace(index))]
	if !ok {
		return nil, fmt.Errorf("index %q is not declared in %s", index, p.path)
	}

	out := make([]string, len(symbols))
	copy(out, symbols)

	return out, nil
}

// Listings implements IndexProvider.
func (p *FileIndexProvider) Listings(_ context.Context) ([]Listing, error) {
	listings := make([]Listing, 0, len(p.listed))
	for _, symbol := range p.listed {
		listings = append(listings, Listing{Symbol: symbol, Name: "", Series: "", ISIN: ""})
	}

	return listings, nil
}

// Indices implements IndexProvider.
func (p *FileIndexProvider) Indices(_ context.Context) ([]string, error) {
	out := make([]string, len(p.names))
	copy(out, p.names)

	return out, nil
}

// Quote implements IndexProvider. A static file has no live prices.
func (p *FileIndexProvider) Quote(_ context.Context, symbol string) (*Quote, error) {
	return nil, fmt.Errorf("quote for %s from %s: %w", symbol, p.path, ErrUnsupported)
}
