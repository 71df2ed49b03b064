// Package matcher pairs trading-card product names scraped from independent
// storefronts. Names are normalized, canonicalized per game, bucketed by a
// coarse family key (species, archetype or iconic card name) and then scored
// with a weighted blend of Jaro-Winkler strategies inside their bucket.
//
// Everything here is pure and synchronous. A CandidateGroup is never mutated
// after Group returns, so callers may resolve queries against it from many
// goroutines at once.
package matcher
