// cmd/artist.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerberussg/songmeta/pkg/resolver"
)

var artistThreshold float64

var artistCmd = &cobra.Command{
	Use:   "artist <credit>",
	Short: "Resolve an artist credit to a canonical identity",
	Long: `Resolve a raw artist credit string to its canonical MusicBrainz
identity with genre tags. Multi-artist credits are normalized to the primary
artist before searching, and candidates are fuzzy-matched against the query.

Examples:
  songmeta artist "Adele"
  songmeta artist "Jay-Z & Linkin Park"
  songmeta artist "Calvin Harris feat. Rihanna" --threshold 0.9`,
	Args: cobra.ExactArgs(1),
	Run:  runArtist,
}

func init() {
	rootCmd.AddCommand(artistCmd)

	artistCmd.Flags().Float64VarP(&artistThreshold, "threshold", "t", 0, "minimum confidence to accept a match (default from config)")
}

func runArtist(cmd *cobra.Command, args []string) {
	credit := args[0]

	threshold := artistThreshold
	if threshold <= 0 {
		threshold = viper.GetFloat64("resolver.confidence_threshold")
	}

	mb := newMusicBrainzResolver()

	artist, err := mb.Resolve(context.Background(), credit, threshold)
	if err != nil {
		if errors.Is(err, resolver.ErrRateLimited) {
			fmt.Println("MusicBrainz is rate limiting requests - try again in a little while")
			return
		}
		fmt.Printf("Error resolving artist: %v\n", err)
		return
	}

	if artist == nil {
		fmt.Printf("No confident match for '%s' (threshold %.2f)\n", credit, threshold)
		return
	}

	fmt.Printf("Artist: %s\n", artist.Name)
	fmt.Printf("MusicBrainz ID: %s\n", artist.ID)
	if len(artist.Genres) > 0 {
		fmt.Printf("Genres: %s\n", strings.Join(artist.Genres, ", "))
	} else {
		fmt.Println("Genres: (none tagged)")
	}
}
