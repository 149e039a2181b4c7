// Package recommend filters, scores and ranks normalized vehicle positions
// against a rider's stop and optional destination.
package recommend
