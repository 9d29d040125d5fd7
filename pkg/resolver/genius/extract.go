// pkg/resolver/genius/extract.go - Lyric text extraction from song pages

package genius

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

const legacyContainerClass = "Lyrics__Container__LyricsTextContainer__Content"

// extractLyrics pulls lyric text out of a song page. Genius marks lyric
// blocks with a data-lyrics-container attribute; older page revisions use a
// known container class instead. Text nodes inside a container each become
// one line, blocks are newline-joined, every line is trimmed and blank lines
// are dropped. An empty result means the page had no recognizable lyrics.
func extractLyrics(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	containers := findContainers(doc, isLyricsContainer)
	if len(containers) == 0 {
		containers = findContainers(doc, isLegacyContainer)
	}

	var parts []string
	for _, container := range containers {
		if text := containerText(container); text != "" {
			parts = append(parts, text)
		}
	}

	var lines []string
	for _, line := range strings.Split(strings.Join(parts, "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// findContainers collects matching elements without descending into a match,
// so nested markup inside a container is not collected twice.
func findContainers(n *html.Node, match func(*html.Node) bool) []*html.Node {
	if match(n) {
		return []*html.Node{n}
	}

	var found []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		found = append(found, findContainers(child, match)...)
	}
	return found
}

func isLyricsContainer(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "div" {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "data-lyrics-container" && attr.Val == "true" {
			return true
		}
	}
	return false
}

func isLegacyContainer(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "div" {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if class == legacyContainerClass {
				return true
			}
		}
	}
	return false
}

// containerText flattens a container subtree to text, one line per text
// node. <br> elements carry no text of their own, so line breaks fall out of
// the per-node split naturally.
func containerText(n *html.Node) string {
	var lines []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if text := strings.TrimSpace(node.Data); text != "" {
				lines = append(lines, text)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return strings.Join(lines, "\n")
}
