package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Input validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidDate          ErrorCode = 102
	ErrCodeInvalidDateRange     ErrorCode = 103
	ErrCodeInvalidFrequency     ErrorCode = 104
	ErrCodeInvalidYears         ErrorCode = 105
	ErrCodeInvalidOutputMode    ErrorCode = 106
	ErrCodeInvalidDataset       ErrorCode = 107
	ErrCodeMissingParameter     ErrorCode = 108
	ErrCodeInvalidInterval      ErrorCode = 109

	// Resolution errors (200-299)
	ErrCodeIndexNotFound          ErrorCode = 200
	ErrCodeIndexSourceUnavailable ErrorCode = 201

	// Per-symbol errors (300-399)
	ErrCodeInvalidSymbol ErrorCode = 300
	ErrCodeNoData        ErrorCode = 301
	ErrCodeSymbolFailed  ErrorCode = 302

	// Aggregation errors (400-499)
	ErrCodeNothingToCombine ErrorCode = 400

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidProvider       ErrorCode = 704
	ErrCodeProviderUnsupported   ErrorCode = 705

	// Output errors (800-899)
	ErrCodeOutputWriteFailed ErrorCode = 800
)
