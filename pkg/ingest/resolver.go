package ingest

import (
	"context"
	"strings"
	"sync"

	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"go.uber.org/zap"
)

// SymbolResolver turns an index name into its constituent symbols.
type SymbolResolver interface {
	// Resolve never fails: provider errors are logged and yield an empty slice.
	Resolve(ctx context.Context, index string) []string
}

// SymbolValidator decides whether a symbol is listed on the exchange.
type SymbolValidator interface {
	// IsValid never fails: when the listing cannot be fetched the symbol is denied.
	IsValid(ctx context.Context, symbol string) bool
}

// IndexResolver implements SymbolResolver and SymbolValidator on top of an IndexProvider.
type IndexResolver struct {
	provider provider.IndexProvider
	logger   *zap.Logger

	mu     sync.Mutex
	listed map[string]struct{}
}

// NewIndexResolver creates a resolver backed by p.
func NewIndexResolver(p provider.IndexProvider, logger *zap.Logger) *IndexResolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IndexResolver{
		provider: p,
		logger:   logger,
		mu:       sync.Mutex{},
		listed:   nil,
	}
}

// Resolve returns the constituents of index in source order, duplicates included.
func (r *IndexResolver) Resolve(ctx context.Context, index string) []string {
	symbols, err := r.provider.Constituents(ctx, index)
	if err != nil {
		r.logger.Warn("Failed to resolve index",
			zap.String("index", index),
			zap.String("source", r.provider.Name()),
			zap.Error(err),
		)

		return []string{}
	}

	out := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol != "" {
			out = append(out, symbol)
		}
	}

	return out
}

// IsValid reports whether symbol appears in the exchange listing.
// The listing is fetched on first use and reused for the rest of the run.
func (r *IndexResolver) IsValid(ctx context.Context, symbol string) bool {
	listed, err := r.listing(ctx)
	if err != nil {
		r.logger.Warn("Failed to fetch listing, denying symbol",
			zap.String("symbol", symbol),
			zap.String("source", r.provider.Name()),
			zap.Error(err),
		)

		return false
	}

	_, ok := listed[strings.ToUpper(strings.TrimSpace(symbol))]

	return ok
}

func (r *IndexResolver) listing(ctx context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listed != nil {
		return r.listed, nil
	}

	listings, err := r.provider.Listings(ctx)
	if err != nil {
		return nil, err
	}

	listed := make(map[string]struct{}, len(listings))
	for _, listing := range listings {
		listed[strings.ToUpper(strings.TrimSpace(listing.Symbol))] = struct{}{}
	}

	r.listed = listed

	return listed, nil
}
