// pkg/resolver/genius/extract_test.go

package genius

import (
	"strings"
	"testing"
)

func TestExtractLyrics_DataAttributeContainers(t *testing.T) {
	page := `<html><body>
		<div class="header">Song Page</div>
		<div data-lyrics-container="true">Verse 1<br>Line 2</div>
		<div data-lyrics-container="true">Chorus<br>Chorus line 2</div>
		<div class="footer">About</div>
	</body></html>`

	lyrics, err := extractLyrics(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extractLyrics failed: %v", err)
	}

	expected := "Verse 1\nLine 2\nChorus\nChorus line 2"
	if lyrics != expected {
		t.Errorf("Expected %q, got %q", expected, lyrics)
	}
}

func TestExtractLyrics_LegacyClassFallback(t *testing.T) {
	page := `<html><body>
		<div class="Lyrics__Container__LyricsTextContainer__Content">Old style<br>Second line</div>
	</body></html>`

	lyrics, err := extractLyrics(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extractLyrics failed: %v", err)
	}

	expected := "Old style\nSecond line"
	if lyrics != expected {
		t.Errorf("Expected %q, got %q", expected, lyrics)
	}
}

func TestExtractLyrics_NestedMarkup(t *testing.T) {
	page := `<html><body>
		<div data-lyrics-container="true"><i>Intro</i><br><a href="/x">Annotated line</a></div>
	</body></html>`

	lyrics, err := extractLyrics(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extractLyrics failed: %v", err)
	}

	expected := "Intro\nAnnotated line"
	if lyrics != expected {
		t.Errorf("Expected %q, got %q", expected, lyrics)
	}
}

func TestExtractLyrics_BlankLinesDropped(t *testing.T) {
	page := `<html><body>
		<div data-lyrics-container="true">Line one<br><br>   <br>Line two</div>
	</body></html>`

	lyrics, err := extractLyrics(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extractLyrics failed: %v", err)
	}

	expected := "Line one\nLine two"
	if lyrics != expected {
		t.Errorf("Expected %q, got %q", expected, lyrics)
	}
}

func TestExtractLyrics_NoContainers(t *testing.T) {
	page := `<html><body><div class="promo">No lyrics here</div></body></html>`

	lyrics, err := extractLyrics(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extractLyrics failed: %v", err)
	}

	if lyrics != "" {
		t.Errorf("Expected empty result for page without containers, got %q", lyrics)
	}
}
