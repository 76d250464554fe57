package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LucasOJ/read-mapping/internal/fastq"
	"github.com/LucasOJ/read-mapping/pkg/readmapping"
)

func newMapCmd() *cobra.Command {
	var indexPath, readsPath string
	var seedLen, maxSeeds, workers int

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map FASTQ reads against a built index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(indexPath, readsPath, seedLen, maxSeeds, workers)
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "path to a built index")
	cmd.Flags().StringVar(&readsPath, "reads", "", "path to FASTQ reads")
	cmd.Flags().IntVar(&seedLen, "seed-len", 20, "seed window length")
	cmd.Flags().IntVar(&maxSeeds, "max-seeds", 3, "maximum seed windows tried per read")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel mapping workers (default: NumCPU)")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("reads")

	return cmd
}

// mapJob and mapOutcome carry a single read through the worker pool, keyed
// by seqNum so the collector can write results back out in input order
// even though workers finish out of order.
type mapJob struct {
	seqNum int
	record *fastq.Record
}

type mapOutcome struct {
	seqNum int
	record *fastq.Record
	result readmapping.MapResult
	err    error
}

func runMap(indexPath, readsPath string, seedLen, maxSeeds, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	indexFile, err := os.Open(indexPath)
	if err != nil {
		return errors.Wrap(err, "opening index file")
	}
	defer indexFile.Close()

	idx, err := readmapping.ReadFrom(indexFile)
	if err != nil {
		return errors.Wrap(err, "reading index")
	}
	log.Info("loaded index")

	readsFile, err := os.Open(readsPath)
	if err != nil {
		return errors.Wrap(err, "opening reads file")
	}
	defer readsFile.Close()

	out := bufio.NewWriterSize(os.Stdout, 1<<20)
	defer out.Flush()

	seedHistogram, err := mapAllReads(idx, readsFile, out, seedLen, maxSeeds, workers)
	if err != nil {
		return err
	}

	for attempt, count := range seedHistogram {
		log.WithFields(log.Fields{"seed_attempt": attempt, "hits": count}).Info("seed attempt histogram")
	}
	return nil
}

func mapAllReads(idx *readmapping.Index, r io.Reader, w io.Writer, seedLen, maxSeeds, workers int) ([]int, error) {
	jobs := make(chan mapJob, workers*2)
	outcomes := make(chan mapOutcome, workers*2)

	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return runMapWorker(ctx, idx, jobs, outcomes, seedLen, maxSeeds)
		})
	}

	g.Go(func() error {
		defer close(jobs)
		return produceMapJobs(ctx, r, jobs)
	})

	histogram := make([]int, maxSeeds)
	collectorDone := make(chan error, 1)
	go func() {
		collectorDone <- collectMapOutcomes(outcomes, w, histogram)
	}()

	workerErr := g.Wait()
	close(outcomes)
	collectorErr := <-collectorDone

	if workerErr != nil {
		return nil, workerErr
	}
	return histogram, collectorErr
}

func produceMapJobs(ctx context.Context, r io.Reader, jobs chan<- mapJob) error {
	fq := fastq.NewReader(r)
	seqNum := 0
	for {
		rec, err := fq.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "parsing reads")
		}
		select {
		case jobs <- mapJob{seqNum: seqNum, record: rec}:
			seqNum++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func runMapWorker(ctx context.Context, idx *readmapping.Index, jobs <-chan mapJob, outcomes chan<- mapOutcome, seedLen, maxSeeds int) error {
	for job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Reads shorter than seed_len are reported Miss without consulting
		// the index, rather than surfacing MapRead's InvalidArgument error.
		var result readmapping.MapResult
		var err error
		if len(job.record.Sequence) < seedLen {
			result = readmapping.MapResult{Hit: false}
		} else {
			result, err = idx.MapRead(job.record.Sequence, seedLen, maxSeeds)
		}
		outcomes <- mapOutcome{seqNum: job.seqNum, record: job.record, result: result, err: err}
	}
	return nil
}

func collectMapOutcomes(outcomes <-chan mapOutcome, w io.Writer, histogram []int) error {
	pending := make(map[int]mapOutcome)
	next := 0

	for o := range outcomes {
		pending[o.seqNum] = o
		for {
			outcome, ok := pending[next]
			if !ok {
				break
			}
			if outcome.err != nil {
				return errors.Wrapf(outcome.err, "mapping read %q", outcome.record.Header)
			}
			if err := writeMapOutcome(w, outcome); err != nil {
				return err
			}
			if outcome.result.Hit {
				histogram[outcome.result.SeedAttempt]++
			}
			delete(pending, next)
			next++
		}
	}
	return nil
}

func writeMapOutcome(w io.Writer, o mapOutcome) error {
	if !o.result.Hit {
		_, err := fmt.Fprintf(w, "%s\tmiss\n", o.record.Header)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\thit\t%d\t%d\t%d\n",
		o.record.Header, o.result.Position, o.result.MatchedLength, o.result.SeedAttempt)
	return err
}
