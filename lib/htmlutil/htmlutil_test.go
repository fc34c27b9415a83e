package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCollectInts(t *testing.T) {
	doc := parse(t, `
		<div>
			<span class="ball">7</span>
			<span class="ball"> 23 </span>
			<span class="ball">7</span>
			<span class="ball">51</span>
			<span class="ball">n/a</span>
			<span class="ball">44</span>
		</div>
	`)

	require.Equal(t, []int{7, 23, 44}, CollectInts(doc.Find("span.ball"), 1, 50, 5))
	require.Equal(t, []int{7, 23}, CollectInts(doc.Find("span.ball"), 1, 50, 2))
}

func TestNumericCells(t *testing.T) {
	doc := parse(t, `
		<table><tbody>
			<tr><td>05 Jan 2024</td><td>1</td><td>2</td><td>3</td></tr>
		</tbody></table>
	`)

	require.Equal(t, []int{1, 2, 3}, NumericCells(doc.Find("tr").First()))
}

func TestGetText(t *testing.T) {
	doc := parse(t, `<p>a<b>b</b><i>c</i></p>`)
	require.Equal(t, "abc", GetText(doc.Find("p").Nodes[0]))
}
