package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerberussg/songmeta/pkg/cache"
	"github.com/cerberussg/songmeta/pkg/httpx"
	"github.com/cerberussg/songmeta/pkg/resolver/genius"
	"github.com/cerberussg/songmeta/pkg/resolver/musicbrainz"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "songmeta",
	Short: "Song metadata resolution tool",
	Long: `A CLI tool for resolving song metadata: lyrics via the Genius API and
canonical artist identities with genre tags via MusicBrainz. Results are
cached locally so repeated lookups skip the network.`,
	Version: "0.1.0",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.songmeta/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// A local .env is the easiest place to keep GENIUS_API_TOKEN during
	// development; absence is not an error.
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".songmeta")
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.BindEnv("genius.api_token", "GENIUS_API_TOKEN")

	viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("musicbrainz.user_agent", "songmeta/0.1.0 (https://github.com/cerberussg/songmeta)")
	viper.SetDefault("cache.dir", defaultCacheDir())
	viper.SetDefault("http.max_retries", 3)
	viper.SetDefault("http.backoff_seconds", 1.0)
	viper.SetDefault("http.timeout_seconds", 30)
	viper.SetDefault("resolver.confidence_threshold", 0.8)

	setupLogging()
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if viper.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".songmeta-cache"
	}
	return filepath.Join(home, ".songmeta", "cache")
}

// newRetryingClient builds the shared HTTP client with the configured
// retry policy and per-request timeout.
func newRetryingClient() *http.Client {
	return &http.Client{
		Timeout: time.Duration(viper.GetInt("http.timeout_seconds")) * time.Second,
		Transport: &httpx.Transport{
			MaxAttempts:   viper.GetInt("http.max_retries"),
			BackoffFactor: time.Duration(viper.GetFloat64("http.backoff_seconds") * float64(time.Second)),
		},
	}
}

func newGeniusClient() (*genius.Client, error) {
	return genius.New(genius.Config{
		Token:      viper.GetString("genius.api_token"),
		HTTPClient: newRetryingClient(),
		Cache:      cache.New(viper.GetString("cache.dir"), log.Logger),
		Logger:     log.Logger,
	})
}

func newMusicBrainzResolver() *musicbrainz.Resolver {
	return musicbrainz.New(musicbrainz.Config{
		UserAgent:  viper.GetString("musicbrainz.user_agent"),
		HTTPClient: newRetryingClient(),
		Logger:     log.Logger,
	})
}
