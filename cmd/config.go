package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long: `View and modify configuration settings for songmeta.

Settings are stored in ~/.songmeta/config.yaml`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration key to a specific value.

Available keys:
  genius.api_token              - Genius API token (or GENIUS_API_TOKEN env var)
  musicbrainz.user_agent        - User agent for MusicBrainz requests
  cache.dir                     - Lyrics cache directory
  http.max_retries              - Attempts per request (default: 3)
  http.backoff_seconds          - Retry backoff base factor (default: 1.0)
  http.timeout_seconds          - Per-request timeout (default: 30)
  resolver.confidence_threshold - Minimum artist match score (default: 0.8)

Examples:
  songmeta config set http.max_retries 5
  songmeta config set cache.dir ~/.cache/songmeta`,
	Args: cobra.ExactArgs(2),
	Run:  runConfigSet,
}

var configShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Show configuration values",
	Long: `Display current configuration settings. If no key is specified,
shows all settings.

Examples:
  songmeta config show
  songmeta config show http.max_retries`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) {
	key := args[0]
	value := args[1]

	viper.Set(key, value)

	err := viper.WriteConfig()
	if err != nil {
		// Try to write to default location if config doesn't exist
		err = viper.SafeWriteConfig()
		if err != nil {
			fmt.Printf("Error writing config: %v\n", err)
			return
		}
	}

	fmt.Printf("Set %s = %v\n", key, viper.Get(key))
}

func runConfigShow(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		// Show specific key
		key := args[0]
		value := viper.Get(key)
		if value == nil {
			fmt.Printf("Key '%s' is not set\n", key)
			return
		}
		fmt.Printf("%s = %v\n", key, redact(key, value))
		return
	}

	fmt.Println("Current configuration:")
	fmt.Printf("Config file: %s\n\n", viper.ConfigFileUsed())

	keys := []string{
		"genius.api_token",
		"musicbrainz.user_agent",
		"cache.dir",
		"http.max_retries",
		"http.backoff_seconds",
		"http.timeout_seconds",
		"resolver.confidence_threshold",
	}

	for _, key := range keys {
		fmt.Printf("%-30s = %v\n", key, redact(key, viper.Get(key)))
	}
}

// redact keeps credentials out of terminal scrollback.
func redact(key string, value interface{}) interface{} {
	if !strings.Contains(key, "token") {
		return value
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return value
	}
	return "****"
}
