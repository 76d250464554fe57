package main

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LucasOJ/read-mapping/internal/fasta"
	"github.com/LucasOJ/read-mapping/pkg/fmindex"
	"github.com/LucasOJ/read-mapping/pkg/readmapping"
)

func newBuildCmd() *cobra.Command {
	var genomePath, indexPath string
	var rankPeriod, samplePeriod int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a read-mapping index from a FASTA genome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(genomePath, indexPath, rankPeriod, samplePeriod)
		},
	}

	cmd.Flags().StringVar(&genomePath, "genome", "", "path to the reference genome (FASTA)")
	cmd.Flags().StringVar(&indexPath, "index", "", "path to write the built index")
	cmd.Flags().IntVar(&rankPeriod, "rank-period", fmindex.DefaultRankPeriod, "BWT rank checkpoint period (R)")
	cmd.Flags().IntVar(&samplePeriod, "sample-period", fmindex.DefaultSamplePeriod, "sampled suffix array period (K)")
	_ = cmd.MarkFlagRequired("genome")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func runBuild(genomePath, indexPath string, rankPeriod, samplePeriod int) error {
	genomeFile, err := os.Open(genomePath)
	if err != nil {
		return errors.Wrap(err, "opening genome file")
	}
	defer genomeFile.Close()

	genome, err := fasta.LoadGenome(genomeFile)
	if err != nil {
		return errors.Wrap(err, "loading genome")
	}
	log.WithField("bases", len(genome)).Info("loaded genome")

	idx, err := readmapping.Build(genome, rankPeriod, samplePeriod)
	if err != nil {
		return errors.Wrap(err, "building index")
	}

	out, err := os.Create(indexPath)
	if err != nil {
		return errors.Wrap(err, "creating index file")
	}
	defer out.Close()

	if err := idx.WriteTo(out); err != nil {
		return errors.Wrap(err, "writing index")
	}

	log.WithField("path", indexPath).Info("wrote index")
	return nil
}
