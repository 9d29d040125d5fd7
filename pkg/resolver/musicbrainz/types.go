// pkg/resolver/musicbrainz/types.go

package musicbrainz

// ArtistSearchResult represents the response from MusicBrainz artist search
type ArtistSearchResult struct {
	Created string   `json:"created"`
	Count   int      `json:"count"`
	Offset  int      `json:"offset"`
	Artists []Artist `json:"artists"`
}

// Artist represents a MusicBrainz artist as returned by search
type Artist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SortName       string `json:"sort-name"`
	Score          int    `json:"score,omitempty"` // Search relevance score
	Type           string `json:"type,omitempty"`
	Country        string `json:"country,omitempty"`
	Disambiguation string `json:"disambiguation,omitempty"`
}

// ArtistDetail represents a full artist lookup including tag data
type ArtistDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SortName string `json:"sort-name"`
	Tags     []Tag  `json:"tags,omitempty"`

	// Genre is a legacy semicolon-delimited field some server versions
	// return; used only when the tag list yields nothing.
	Genre string `json:"genre,omitempty"`
}

// Tag represents a user-generated tag with its vote count
type Tag struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

// Error represents a MusicBrainz API error response
type Error struct {
	Error string `json:"error"`
	Help  string `json:"help,omitempty"`
}
