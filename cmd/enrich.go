// cmd/enrich.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cerberussg/songmeta/pkg/resolver"
	"github.com/cerberussg/songmeta/pkg/resolver/genius"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <folder>",
	Short: "Resolve metadata for all audio files in a folder",
	Long: `Read embedded tags from every audio file in the folder, resolve each
artist to a canonical identity with genres, and optionally fetch lyrics.
Files are never modified; results are printed and lyrics are cached.

Examples:
  songmeta enrich ~/Music/incoming
  songmeta enrich ~/Music --lyrics --recursive=false`,
	Args: cobra.ExactArgs(1),
	Run:  runEnrich,
}

var (
	withLyrics    bool
	enrichRecurse bool
)

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().BoolVar(&withLyrics, "lyrics", false, "also fetch lyrics for each track")
	enrichCmd.Flags().BoolVarP(&enrichRecurse, "recursive", "r", true, "process subdirectories recursively")
}

func runEnrich(cmd *cobra.Command, args []string) {
	folder := args[0]

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		fmt.Printf("Error: Directory '%s' does not exist or is not accessible\n", folder)
		return
	}

	absPath, err := filepath.Abs(folder)
	if err != nil {
		fmt.Printf("Error: Could not resolve path '%s': %v\n", folder, err)
		return
	}

	var lyricsClient *genius.Client
	if withLyrics {
		lyricsClient, err = newGeniusClient()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			fmt.Println("Set GENIUS_API_TOKEN or run: songmeta config set genius.api_token <token>")
			return
		}
	}

	mb := newMusicBrainzResolver()
	threshold := viper.GetFloat64("resolver.confidence_threshold")

	fmt.Printf("Processing folder: %s\n", absPath)

	files, err := findAudioFiles(absPath, enrichRecurse)
	if err != nil {
		fmt.Printf("Error scanning directory: %v\n", err)
		return
	}

	if len(files) == 0 {
		fmt.Println("No supported audio files found in the specified directory")
		return
	}

	fmt.Printf("Found %d audio files\n\n", len(files))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var resolved, unresolved, untagged, lyricsFound int

	for i, file := range files {
		if viper.GetBool("verbose") {
			fmt.Printf("[%d/%d] %s\n", i+1, len(files), file)
		}

		title, artist, err := readTags(file)
		if err != nil || artist == "" {
			untagged++
			if viper.GetBool("verbose") {
				fmt.Printf("  No usable tags: %s\n", filepath.Base(file))
			}
			continue
		}

		identity, err := mb.Resolve(ctx, artist, threshold)
		if err != nil {
			if errors.Is(err, resolver.ErrRateLimited) {
				fmt.Println("MusicBrainz is rate limiting requests - stopping early")
				break
			}
			unresolved++
			fmt.Printf("  Error resolving '%s': %v\n", artist, err)
			continue
		}

		if identity == nil {
			unresolved++
			fmt.Printf("%s - no confident artist match\n", filepath.Base(file))
			continue
		}

		resolved++
		fmt.Printf("%s\n", filepath.Base(file))
		fmt.Printf("  Artist: %s (%s)\n", identity.Name, identity.ID)
		if len(identity.Genres) > 0 {
			fmt.Printf("  Genres: %s\n", strings.Join(identity.Genres, ", "))
		}

		if lyricsClient != nil && title != "" {
			lyrics, err := lyricsClient.GetLyrics(ctx, title, artist)
			if err != nil {
				if errors.Is(err, resolver.ErrRateLimited) {
					fmt.Println("Genius is rate limiting requests - skipping remaining lyrics")
					lyricsClient = nil
					continue
				}
				fmt.Printf("  Lyrics error: %v\n", err)
				continue
			}
			if lyrics != "" {
				lyricsFound++
				fmt.Printf("  Lyrics: %d lines (cached)\n", len(strings.Split(lyrics, "\n")))
			} else {
				fmt.Println("  Lyrics: not found")
			}
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total files found: %d\n", len(files))
	fmt.Printf("Artists resolved: %d\n", resolved)
	fmt.Printf("No confident match: %d\n", unresolved)
	if untagged > 0 {
		fmt.Printf("Files without usable tags: %d\n", untagged)
	}
	if withLyrics {
		fmt.Printf("Lyrics found: %d\n", lyricsFound)
	}
}

// supportedExtensions lists the audio formats dhowden/tag can read.
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".aiff": true,
	".aif":  true,
}

// findAudioFiles finds all supported audio files in a directory
func findAudioFiles(root string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				// Skip AppleDouble files (._filename)
				if strings.HasPrefix(d.Name(), "._") {
					return nil
				}
				if supportedExtensions[strings.ToLower(filepath.Ext(path))] {
					files = append(files, path)
				}
			}
			return nil
		})
		return files, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "._") {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(root, entry.Name()))
		}
	}
	return files, nil
}

// readTags pulls title and artist from a file's embedded tags.
func readTags(path string) (title, artist string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return "", "", err
	}

	return strings.TrimSpace(metadata.Title()), strings.TrimSpace(metadata.Artist()), nil
}
