// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/activity-box/internal/config"
	"github.com/naka-gawa/activity-box/internal/gateway"
	"github.com/naka-gawa/activity-box/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Publishes the user's recent public activity to a gist",
	Long: `Fetches the latest public events of a GitHub user, formats them into at most
five short lines and overwrites the first file of the target gist.
Settings come from flags, then GH_USERNAME / GIST_ID / GH_PAT / GITHUB_API_URL,
then the optional .env and YAML config files.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := loadConfig(cmd, os.Getenv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		logger := cfg.Log.NewLogger(os.Stderr)

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if err := runUpdate(ctx, cfg, dryRun, os.Stdout, logger); err != nil {
			logger.Error("Failed to update activity gist", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

// runUpdate wires the gateway and use cases for a single run.
// In dry-run mode the content is written to out and the gist is left alone.
func runUpdate(ctx context.Context, cfg *config.Config, dryRun bool, out io.Writer, logger *slog.Logger) error {
	validate := cfg.Validate
	if dryRun {
		validate = cfg.ValidateRender
	}
	if err := validate(); err != nil {
		return err
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, gateway.Options{
		BaseURL:       cfg.APIURL,
		WaitRateLimit: cfg.WaitRateLimit,
	}, logger)
	if err != nil {
		return goerr.Wrap(err, "failed to create GitHub gateway")
	}

	formatter := usecase.NewFormatter(
		usecase.WithMaxLines(cfg.MaxLines),
		usecase.WithMaxLength(cfg.MaxLength),
		usecase.WithEmoji(cfg.Emoji),
	)

	if dryRun {
		updater := usecase.NewUpdater(githubGateway, formatter, nil, logger)
		content, err := updater.Render(ctx, cfg.Username)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, content)
		return nil
	}

	publisher := usecase.NewPublisher(githubGateway, cfg.GistID, logger)
	updater := usecase.NewUpdater(githubGateway, formatter, publisher, logger)
	if _, err := updater.Update(ctx, cfg.Username); err != nil {
		return err
	}
	return nil
}

// loadConfig layers defaults, the YAML file, the dotenv file, the
// environment and finally any flag the user set explicitly.
func loadConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(getenv)

	if flags.Changed("user") {
		cfg.Username, _ = flags.GetString("user")
	}
	if flags.Changed("gist") {
		cfg.GistID, _ = flags.GetString("gist")
	}
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("max-lines") {
		cfg.MaxLines, _ = flags.GetInt("max-lines")
	}
	if flags.Changed("max-length") {
		cfg.MaxLength, _ = flags.GetInt("max-length")
	}
	if flags.Changed("emoji") {
		cfg.Emoji, _ = flags.GetBool("emoji")
	}
	if flags.Changed("wait-rate-limit") {
		cfg.WaitRateLimit, _ = flags.GetBool("wait-rate-limit")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON, _ = flags.GetBool("log-json")
	}
	// --verbose wins over --log-level.
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
	addUpdateFlags(updateCmd)
}

func addUpdateFlags(c *cobra.Command) {
	c.Flags().StringP("user", "u", "", "GitHub user whose activity is shown (env GH_USERNAME)")
	c.Flags().StringP("gist", "g", "", "ID of the gist to update (env GIST_ID)")
	c.Flags().String("api-url", "", "GitHub Enterprise Server base URL (env GITHUB_API_URL)")
	c.Flags().Int("max-lines", usecase.DefaultMaxLines, "Maximum number of lines in the gist")
	c.Flags().Int("max-length", usecase.DefaultMaxLength, "Maximum number of characters per line")
	c.Flags().Bool("emoji", false, "Prefix every line with an emoji for its event type")
	c.Flags().Bool("wait-rate-limit", false, "Sleep through GitHub secondary rate limits instead of failing")
	c.Flags().Bool("dry-run", false, "Print the content instead of updating the gist")
}
