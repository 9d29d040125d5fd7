// cmd/lyrics.go
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cerberussg/songmeta/pkg/resolver"
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <title> <artist>",
	Short: "Fetch lyrics for a song",
	Long: `Look up lyrics for a song on Genius. The artist may be a full credit
string; featured artists are stripped before searching.

Requires a Genius API token (GENIUS_API_TOKEN environment variable or the
genius.api_token config key). Get one at https://genius.com/api-clients.

Examples:
  songmeta lyrics "Hello" "Adele"
  songmeta lyrics "Numb / Encore" "Jay-Z feat. Linkin Park"`,
	Args: cobra.ExactArgs(2),
	Run:  runLyrics,
}

func init() {
	rootCmd.AddCommand(lyricsCmd)
}

func runLyrics(cmd *cobra.Command, args []string) {
	title := args[0]
	artist := args[1]

	client, err := newGeniusClient()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Set GENIUS_API_TOKEN or run: songmeta config set genius.api_token <token>")
		return
	}

	lyrics, err := client.GetLyrics(context.Background(), title, artist)
	if err != nil {
		if errors.Is(err, resolver.ErrRateLimited) {
			fmt.Println("Genius is rate limiting requests - try again in a little while")
			return
		}
		fmt.Printf("Error fetching lyrics: %v\n", err)
		return
	}

	if lyrics == "" {
		fmt.Printf("No lyrics found for '%s' by '%s'\n", title, artist)
		return
	}

	fmt.Println(lyrics)
}
