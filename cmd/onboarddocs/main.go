package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/onboarddocs-go/internal/acquire"
	"github.com/quantmind-br/onboarddocs-go/internal/analysis"
	"github.com/quantmind-br/onboarddocs-go/internal/cache"
	"github.com/quantmind-br/onboarddocs-go/internal/config"
	"github.com/quantmind-br/onboarddocs-go/internal/domain"
	"github.com/quantmind-br/onboarddocs-go/internal/generate"
	"github.com/quantmind-br/onboarddocs-go/internal/output"
	"github.com/quantmind-br/onboarddocs-go/internal/utils"
	"github.com/quantmind-br/onboarddocs-go/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onboarddocs",
	Short: "Generate onboarding documentation from a repository",
	Long: `OnboardDocs analyzes a repository (hosted git URL or local directory),
extracts its key concepts, setup steps, code examples and dependencies, and
renders onboarding documents: a task list, an FAQ and a quick start guide.`,
	Version: version.Short(),
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.onboarddocs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().IntP("workers", "j", config.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Overall analysis timeout")
	rootCmd.PersistentFlags().Bool("cache", config.DefaultCacheEnabled, "Cache analysis results")
	rootCmd.PersistentFlags().Bool("progress", false, "Show a progress bar while scanning files")

	_ = viper.BindPFlag("concurrency.workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("concurrency.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("cache.enabled", rootCmd.PersistentFlags().Lookup("cache"))
	_ = viper.BindPFlag("acquire.show_progress", rootCmd.PersistentFlags().Lookup("progress"))

	generateCmd.Flags().StringP("kind", "k", "all", "Document kind: tasks, faq, quickstart or all")
	generateCmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Output directory")
	generateCmd.Flags().Bool("force", false, "Overwrite existing files")
	generateCmd.Flags().Bool("dry-run", false, "Generate without writing files")
	_ = viper.BindPFlag("output.directory", generateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.overwrite", generateCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <reference>",
	Short: "Analyze a repository and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := runAnalysis(ctx, cfg, args[0])
		if err != nil {
			return err
		}

		printSummary(result)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <reference>",
	Short: "Analyze a repository and write onboarding documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		kindFlag, _ := cmd.Flags().GetString("kind")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		var kinds []domain.DocumentKind
		if kindFlag == "all" {
			kinds = domain.DocumentKinds()
		} else {
			kind, ok := domain.ParseDocumentKind(kindFlag)
			if !ok {
				return fmt.Errorf("unknown document kind: %s", kindFlag)
			}
			kinds = []domain.DocumentKind{kind}
		}

		result, err := runAnalysis(ctx, cfg, args[0])
		if err != nil {
			return err
		}

		service := generate.NewService(generate.ServiceOptions{Logger: log})
		documents := make(map[domain.DocumentKind]string)
		if len(kinds) == len(domain.DocumentKinds()) {
			var failures map[domain.DocumentKind]error
			documents, failures = service.GenerateAll(result)
			for kind, genErr := range failures {
				log.Error().Str("kind", string(kind)).Err(genErr).Msg("Generation failed")
			}
		} else {
			for _, kind := range kinds {
				markdown, genErr := service.Generate(kind, result)
				if genErr != nil {
					return genErr
				}
				documents[kind] = markdown
			}
		}

		writer := output.NewWriter(output.WriterOptions{
			BaseDir: cfg.Output.Directory,
			Force:   cfg.Output.Overwrite,
			DryRun:  dryRun,
		})
		if !dryRun {
			if err := writer.EnsureBaseDir(); err != nil {
				return err
			}
		}

		failures := writer.WriteAll(documents)
		for kind, writeErr := range failures {
			log.Error().Str("kind", string(kind)).Err(writeErr).Msg("Write failed")
		}
		for _, kind := range domain.DocumentKinds() {
			if _, ok := documents[kind]; !ok {
				continue
			}
			if _, failed := failures[kind]; failed {
				continue
			}
			log.Info().Str("path", writer.GetPath(kind)).Msg("Wrote document")
		}

		if len(failures) > 0 {
			return fmt.Errorf("%d document(s) failed", len(failures))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

// setup loads config, builds the logger and installs signal handling.
func setup(cmd *cobra.Command) (context.Context, *config.Config, func(), error) {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Concurrency.Timeout)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(sigCh)
		cancel()
	}

	return ctx, cfg, cleanup, nil
}

// runAnalysis wires the pipeline from config and runs it. Every log line of
// one run carries the same run_id and reference fields.
func runAnalysis(ctx context.Context, cfg *config.Config, reference string) (*domain.RepositoryAnalysis, error) {
	runLog := log.WithRunID(uuid.NewString()).WithReference(reference)

	acquirer := acquire.New(acquire.Options{
		Logger:       runLog,
		MaxFileSize:  cfg.MaxFileSizeBytes(),
		MaxRetries:   cfg.Acquire.MaxRetries,
		ShowProgress: cfg.Acquire.ShowProgress,
	})

	if !acquirer.Supports(reference) {
		return nil, domain.NewUnsupportedSourceError(reference)
	}

	var analysisCache analysis.AnalysisCache
	if cfg.Cache.Enabled {
		if err := config.EnsureCacheDir(); err == nil {
			cacheOpts := cache.DefaultOptions()
			cacheOpts.Directory = cfg.Cache.Directory
			cacheOpts.TTL = cfg.Cache.TTL
			badgerCache, cacheErr := cache.NewBadgerCache(cacheOpts)
			if cacheErr != nil {
				runLog.Warn().Err(cacheErr).Msg("Cache unavailable, continuing without it")
			} else {
				defer badgerCache.Close()
				analysisCache = badgerCache
			}
		}
	}

	analyzer := analysis.NewAnalyzer(analysis.Options{
		Acquirer: acquirer,
		Cache:    analysisCache,
		Logger:   runLog,
		Workers:  cfg.Concurrency.Workers,
		RepoName: acquire.RepoName,
	})

	return analyzer.Analyze(ctx, reference)
}

func printSummary(result *domain.RepositoryAnalysis) {
	fmt.Printf("Repository: %s (%s)\n", result.RepoName, result.Reference)
	fmt.Printf("  Concepts:      %d\n", len(result.Concepts))
	fmt.Printf("  Setup steps:   %d\n", len(result.SetupSteps))
	fmt.Printf("  Code examples: %d\n", len(result.CodeExamples))
	fmt.Printf("  Dependencies:  %d\n", len(result.Dependencies))
	if len(result.FailedCategories) > 0 {
		fmt.Printf("  Failed categories: %v\n", result.FailedCategories)
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("    [%s] %s\n", w.Category, w.Message)
		}
	}
}
