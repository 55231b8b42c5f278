package mocks

//go:generate mockgen -destination=./mock_index_provider.go -package=mocks github.com/rxtech-lab/argo-ingest/pkg/ingest/provider IndexProvider
//go:generate mockgen -destination=./mock_market_data_provider.go -package=mocks github.com/rxtech-lab/argo-ingest/pkg/ingest/provider MarketDataProvider
//go:generate mockgen -destination=./mock_table_writer.go -package=mocks github.com/rxtech-lab/argo-ingest/pkg/ingest/writer TableWriter
//go:generate mockgen -destination=./mock_pacer.go -package=mocks github.com/rxtech-lab/argo-ingest/pkg/ingest Pacer
