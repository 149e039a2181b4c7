// Package feed handles fetching, decoding and normalizing the DTPM vehicle
// positioning web service.
//
// The feed is a JSON document whose "posiciones" sequence mixes two record
// forms: pre-structured mappings, and delimiter-encoded strings packing 1-4
// fixed-width records of 12 ordered fields each. The package resolves both
// forms into one canonical PositionRecord shape before anything downstream
// touches the data.
//
// The main types are Client, which fetches one feed snapshot per call, and
// PositionRecord, the deduplicated per-vehicle report. A full ingestion pass:
//
//	client := feed.NewClient(config.Config.Feed)
//	records, err := client.FetchPositions(ctx, "T201", "")
//
// Fetch-level failures (missing configuration, transport errors, a body that
// is not JSON) abort the whole invocation. Individual malformed records never
// do: the feed has known structural inconsistencies, so bad records are
// dropped and the rest of the snapshot survives.
package feed
