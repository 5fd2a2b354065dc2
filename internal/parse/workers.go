package parse

import (
	"sync"

	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/classifier"
	"github.com/dtnitsch/payscale-url-parser/pkg/dataset"
)

// enrich classifies one record and reads its weight.
func enrich(rec dataset.Record) models.EnrichedRow {
	row := models.EnrichedRow{
		ClassifiedURL: classifier.Classify(rec.URL),
		Columns:       rec.Columns,
	}
	if rec.HasTrafficColumn {
		row.Weight, row.HasWeight = dataset.ParseWeight(rec.Traffic)
	}
	return row
}

// worker classifies jobs until the jobs channel is closed.
func worker(wg *sync.WaitGroup, jobs <-chan Job, results []models.EnrichedRow) {
	defer wg.Done()
	for job := range jobs {
		// Each index is written by exactly one worker
		results[job.Index] = enrich(job.Record)
	}
}

// classifyBatch classifies records over workerCount goroutines and returns
// the rows in input order.
func classifyBatch(records []dataset.Record, workerCount int) []models.EnrichedRow {
	results := make([]models.EnrichedRow, len(records))
	if len(records) == 0 {
		return results
	}
	if workerCount > len(records) {
		workerCount = len(records)
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(records))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results)
	}

	for i, rec := range records {
		jobs <- Job{Index: i, Record: rec}
	}
	close(jobs)

	wg.Wait()
	return results
}
