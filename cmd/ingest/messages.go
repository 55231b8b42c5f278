package main

// IndexResolvedMsg carries the constituent lookup started when the index is entered.
type IndexResolvedMsg struct {
	Index   string
	Symbols []string
	Err     error
}
