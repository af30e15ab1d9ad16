package minting

import "fmt"

// Payload returns the metadata bytes of the item with the given serial.
func Payload(label string, serial int) []byte {
	return []byte(fmt.Sprintf("%s %d", label, serial))
}

// PlanBatch builds the batch that follows counter: up to batchSize payloads,
// stopping once the counter would reach quota. A non-positive batchSize
// falls back to DefaultBatchSize.
func PlanBatch(label string, counter int, quota int, batchSize int) Batch {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	batch := Batch{Start: counter, Payloads: make([][]byte, 0, batchSize)}
	for next := counter; next < quota && len(batch.Payloads) < batchSize; next++ {
		batch.Payloads = append(batch.Payloads, Payload(label, next+1))
	}
	return batch
}

// Plan returns every batch of a run that succeeds on the first attempt.
func Plan(label string, quota int, batchSize int) []Batch {
	batches := make([]Batch, 0)
	for counter := 0; counter < quota; {
		batch := PlanBatch(label, counter, quota, batchSize)
		batches = append(batches, batch)
		counter = batch.End()
	}
	return batches
}
