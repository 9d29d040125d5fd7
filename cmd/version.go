package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version number of songmeta",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("songmeta v0.1.0")
		fmt.Println("Song metadata resolution tool")
		fmt.Println("Fetches lyrics from Genius and artist genres from MusicBrainz")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
