// Package feed collects candidate items from syndicated sources. It parses
// feeds, deduplicates entries against the ledger, resolves the best available
// body text for each entry, and keeps only the items that clear the relevance
// cutoff, ranked by composite score.
package feed
