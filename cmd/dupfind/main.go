// Command dupfind finds duplicate regular files beneath one or more
// filesystem roots. Zero roots defaults to the current working
// directory.
package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/n2fs/dupfind/internal/config"
	"github.com/n2fs/dupfind/internal/digest"
	"github.com/n2fs/dupfind/internal/pipeline"
	"github.com/n2fs/dupfind/internal/report"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		workers    int
		algorithm  string
		verbose    bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "dupfind [ROOT...]",
		Short:         "Find duplicate regular files under one or more directories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, roots []string) error {
			cfgFile, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") && cfgFile.Workers > 0 {
				workers = cfgFile.Workers
			}
			if !cmd.Flags().Changed("algorithm") && cfgFile.Algorithm != "" {
				algorithm = cfgFile.Algorithm
			}
			if !cmd.Flags().Changed("verbose") && cfgFile.Verbose {
				verbose = true
			}

			if verbose {
				log.SetLevel(log.DebugLevel)
			}

			if _, err := digest.Resolve(algorithm); err != nil {
				return err
			}

			return pipeline.Run(context.Background(), pipeline.Options{
				Roots:     roots,
				Workers:   workers,
				Algorithm: algorithm,
			}, report.New(os.Stdout))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&workers, "workers", 0, "hashing worker count (0 = hardware parallelism)")
	flags.StringVar(&algorithm, "algorithm", digest.HighwayHash, "digest algorithm: highwayhash or blake2b")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&configPath, "config", "c", "", "optional TOML config file")

	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dupfind:", err)
		return 1
	}
	return 0
}
