package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vidsift/vidsift/internal/config"
	"github.com/vidsift/vidsift/internal/export"
	"github.com/vidsift/vidsift/internal/extract"
	"github.com/vidsift/vidsift/internal/spamcheck"
	"github.com/vidsift/vidsift/internal/youtube"
)

func newExtractCommand() *cobra.Command {
	var (
		maxComments  int
		minLikes     int
		sortBy       string
		noSpamFilter bool
		exclCreator  bool
		dateFrom     string
		dateTo       string
		words        string
		outDir       string
		format       string
		baseName     string
	)

	cmd := &cobra.Command{
		Use:   "extract <video-url> [video-url...]",
		Short: "Fetch, filter and export comments for one or more videos",
		Example: `  vidsift extract https://youtu.be/dQw4w9WgXcQ
  vidsift extract --min-likes 5 --sort date_desc --format both <url>`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyExtractFlags(cmd, cfg, extractFlags{
				maxComments: maxComments, minLikes: minLikes, sortBy: sortBy,
				noSpamFilter: noSpamFilter, exclCreator: exclCreator,
				dateFrom: dateFrom, dateTo: dateTo, words: words,
				outDir: outDir, format: format,
			})
			if err := config.Validate(cfg); err != nil {
				return err
			}

			apiKey, err := cfg.APIKey()
			if err != nil {
				return err
			}

			sortOpt, err := extract.ParseSortOption(cfg.Sort)
			if err != nil {
				return err
			}

			detector := spamcheck.New(spamcheck.Options{
				Threshold: cfg.SpamThreshold(),
				Blacklist: cfg.Filter.Blacklist,
				Whitelist: cfg.Filter.Whitelist,
			})
			client := youtube.NewClient(apiKey, cfg.YouTube.BaseURL, nil)
			extractor := extract.New(client, detector)

			var results []*extract.Result
			for _, url := range args {
				log.Printf("[extract] processing %s", url)
				res, err := extractor.ProcessVideo(cmd.Context(), url, extract.Options{
					FilterSpam:     cfg.Filter.Enabled,
					MaxComments:    cfg.Filter.MaxComments,
					PageDelay:      cfg.PageDelay(),
					MinLikes:       cfg.Filter.MinLikes,
					ExcludeCreator: cfg.Filter.ExcludeCreator,
					DateFrom:       cfg.Filter.DateFrom,
					DateTo:         cfg.Filter.DateTo,
					Words:          cfg.Filter.Words,
					SortBy:         sortOpt,
					Progress: func(fetched int) {
						log.Printf("[extract] fetched %d comments", fetched)
					},
				})
				if err != nil {
					return fmt.Errorf("process %s: %w", url, err)
				}
				log.Printf("[extract] %s: %d kept, %d spam",
					res.Metadata.VideoID, len(res.Comments), len(res.Spam))
				results = append(results, res)
			}

			if baseName == "" {
				baseName = "vidsift"
				if len(results) == 1 {
					baseName = results[0].Metadata.VideoID
				}
			}
			base := filepath.Join(cfg.Export.Dir, baseName)

			if cfg.Export.Format == "csv" || cfg.Export.Format == "both" {
				written, err := export.WriteCSV(base, results)
				if err != nil {
					return err
				}
				for _, path := range written {
					log.Printf("[extract] wrote %s", path)
				}
			}
			if cfg.Export.Format == "json" || cfg.Export.Format == "both" {
				path := base + ".json"
				if err := export.WriteJSON(path, results); err != nil {
					return err
				}
				log.Printf("[extract] wrote %s", path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxComments, "max", 0, "maximum comments to fetch per video (0 = all)")
	cmd.Flags().IntVar(&minLikes, "min-likes", 0, "drop comments with fewer likes")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort order: likes, date_desc, date_asc")
	cmd.Flags().BoolVar(&noSpamFilter, "no-spam-filter", false, "disable spam filtering")
	cmd.Flags().BoolVar(&exclCreator, "exclude-creator", false, "drop the creator's own comments")
	cmd.Flags().StringVar(&dateFrom, "from", "", "only comments on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateTo, "to", "", "only comments on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&words, "words", "", "comma-separated words; keep comments containing any")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory")
	cmd.Flags().StringVar(&format, "format", "", "export format: csv, json, both")
	cmd.Flags().StringVar(&baseName, "name", "", "base file name for exports")

	return cmd
}

type extractFlags struct {
	maxComments  int
	minLikes     int
	sortBy       string
	dateFrom     string
	dateTo       string
	words        string
	outDir       string
	format       string
	noSpamFilter bool
	exclCreator  bool
}

// applyExtractFlags lets explicitly set flags override the config file.
func applyExtractFlags(cmd *cobra.Command, cfg *config.Config, f extractFlags) {
	if cmd.Flags().Changed("max") {
		cfg.Filter.MaxComments = f.maxComments
	}
	if cmd.Flags().Changed("min-likes") {
		cfg.Filter.MinLikes = f.minLikes
	}
	if f.sortBy != "" {
		cfg.Sort = f.sortBy
	}
	if f.noSpamFilter {
		cfg.Filter.Enabled = false
	}
	if f.exclCreator {
		cfg.Filter.ExcludeCreator = true
	}
	if f.dateFrom != "" {
		cfg.Filter.DateFrom = f.dateFrom
	}
	if f.dateTo != "" {
		cfg.Filter.DateTo = f.dateTo
	}
	if strings.TrimSpace(f.words) != "" {
		cfg.Filter.Words = extract.ParseWords(f.words)
	}
	if f.outDir != "" {
		cfg.Export.Dir = f.outDir
	}
	if f.format != "" {
		cfg.Export.Format = f.format
	}
}
