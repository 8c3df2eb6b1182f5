package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vidsift/vidsift/internal/config"
	"github.com/vidsift/vidsift/internal/spamcheck"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		author   string
		likes    int
		asJSON   bool
		override float64
	)

	cmd := &cobra.Command{
		Use:   "analyze [comment text]",
		Short: "Score a single comment",
		Long: `Score a single comment and print the decision.

The comment text is taken from the argument, or from stdin when no
argument is given.`,
		Example: `  vidsift analyze "Check out my crypto channel!"
  echo "great video, thanks" | vidsift analyze --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := commentText(args)
			if err != nil {
				return err
			}

			detector, err := buildDetector(override)
			if err != nil {
				return err
			}

			res := detector.Analyze(text, author, likes)
			if asJSON {
				out, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			printResult(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "comment author display name")
	cmd.Flags().IntVar(&likes, "likes", 0, "comment like count")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full decision as JSON")
	cmd.Flags().Float64Var(&override, "threshold", 0, "spam threshold override (0 uses config)")

	return cmd
}

func commentText(args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no comment text given")
	}
	return text, nil
}

func buildDetector(thresholdOverride float64) (*spamcheck.Detector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	threshold := cfg.SpamThreshold()
	if thresholdOverride > 0 {
		threshold = thresholdOverride
	}
	return spamcheck.New(spamcheck.Options{
		Threshold: threshold,
		Blacklist: cfg.Filter.Blacklist,
		Whitelist: cfg.Filter.Whitelist,
	}), nil
}

func printResult(res spamcheck.Result) {
	verdict := "CLEAN"
	if res.IsSpam {
		verdict = "SPAM"
	}
	fmt.Printf("%s  score=%.3f  threshold=%.2f\n", verdict, res.Score, res.Threshold)
	fmt.Printf("reason: %s\n", res.Reason())
	if primary, ok := res.PrimaryCategory(); ok {
		fmt.Printf("category: %s\n", primary)
	}
	for _, s := range res.Signals {
		fmt.Printf("  +%.2f %s (%s)\n", s.Weight, s.Label, s.Matched)
	}
	for _, ls := range res.Legitimacy {
		fmt.Printf("  %.2f %s\n", ls.Bonus, ls.Label)
	}
	if res.HadObfuscation {
		fmt.Printf("note: homoglyph obfuscation detected\n")
	}
}
