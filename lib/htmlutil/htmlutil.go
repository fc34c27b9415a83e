package htmlutil

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// collects up to `max` integers within [lo, hi] from the text of the
// elements in the selection, skipping anything non-numeric.
// already-seen values are skipped so repeated markup doesn't produce
// duplicate balls.
func CollectInts(sel *goquery.Selection, lo, hi, max int) []int {
	var out []int
	seen := map[int]bool{}
	sel.EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		n, err := strconv.Atoi(strings.TrimSpace(elem.Text()))
		if err != nil {
			return true
		}
		if n < lo || n > hi || seen[n] {
			return true
		}
		seen[n] = true
		out = append(out, n)
		return len(out) < max
	})
	return out
}

// the integer contents of a table row's td/th cells,
// non-numeric cells are ignored
func NumericCells(row *goquery.Selection) []int {
	var out []int
	row.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		n, err := strconv.Atoi(text)
		if err != nil {
			return
		}
		out = append(out, n)
	})
	return out
}
