package provider

import (
	"fmt"
	"sort"
)

// ProviderRole says what a provider answers.
type ProviderRole string

const (
	RoleIndex      ProviderRole = "index"
	RoleMarketData ProviderRole = "market-data"
)

// ProviderInfo contains metadata about a provider.
type ProviderInfo struct {
	Name         string       `json:"name"`
	DisplayName  string       `json:"displayName"`
	Description  string       `json:"description"`
	Role         ProviderRole `json:"role"`
	RequiresAuth bool         `json:"requiresAuth"`
	// Datasets lists what a market data provider serves.
	Datasets []string `json:"datasets,omitempty"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[string]ProviderInfo{
	string(IndexSourceNSE): {
		Name:         string(IndexSourceNSE),
		DisplayName:  "NSE India",
		Description:  "Index constituents, the equity list and live quotes from nseindia.com",
		Role:         RoleIndex,
		RequiresAuth: false,
		Datasets:     nil,
	},
	string(IndexSourceFile): {
		Name:         string(IndexSourceFile),
		DisplayName:  "Index file",
		Description:  "Index baskets declared in a local YAML file",
		Role:         RoleIndex,
		RequiresAuth: false,
		Datasets:     nil,
	},
	string(MarketProviderYahoo): {
		Name:         string(MarketProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Overview fundamentals, financial statements and price history",
		Role:         RoleMarketData,
		RequiresAuth: false,
		Datasets:     []string{"overview", "detailed", "technical"},
	},
	string(MarketProviderPolygon): {
		Name:         string(MarketProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Ticker details and aggregate bars; needs POLYGON_API_KEY",
		Role:         RoleMarketData,
		RequiresAuth: true,
		Datasets:     []string{"overview", "technical"},
	},
}

// GetSupportedProviders returns every provider name, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		providers = append(providers, name)
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[providerName]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported provider: %s", providerName)
	}

	return info, nil
}

// Serves reports whether the named market data provider serves dataset.
func Serves(providerName, dataset string) bool {
	info, err := GetProviderInfo(providerName)
	if err != nil || info.Role != RoleMarketData {
		return false
	}

	for _, d := range info.Datasets {
		if d == dataset {
			return true
		}
	}

	return false
}
