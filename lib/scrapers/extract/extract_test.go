package extract

import (
	"strings"
	"testing"
	"euromillions-backend/lib/draws"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func document(t *testing.T, src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDrawFromContainer(t *testing.T) {
	doc := document(t, `
		<div class="draw-result">
			<span class="draw-date">05 Jan 2024</span>
			<span class="ball">7</span>
			<span class="ball">13</span>
			<span class="ball">23</span>
			<span class="ball">32</span>
			<span class="ball">44</span>
			<span class="lucky-star">3</span>
			<span class="lucky-star">9</span>
			<span class="jackpot">€54 Million</span>
		</div>
	`)

	candidate, ok := DrawFromContainer(doc.Find("div.draw-result"))
	require.True(t, ok)
	require.Equal(t, "05 Jan 2024", candidate.RawDate)
	require.Equal(t, []int{7, 13, 23, 32, 44}, candidate.Main)
	require.Equal(t, []int{3, 9}, candidate.Stars)
	require.Equal(t, 54_000_000.0, candidate.Jackpot)

	record, err := draws.Validate(candidate, "test")
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", record.DateString())
}

func TestDrawFromContainerDatetimeAttribute(t *testing.T) {
	doc := document(t, `
		<article class="result">
			<time datetime="2024-01-05">Friday's draw</time>
			<li class="numero">1</li><li class="numero">2</li><li class="numero">3</li>
			<li class="numero">4</li><li class="numero">5</li>
			<li class="etoile">1</li><li class="etoile">2</li>
		</article>
	`)

	candidate, ok := DrawFromContainer(doc.Find("article.result"))
	require.True(t, ok)
	require.Equal(t, "2024-01-05", candidate.RawDate)
}

func TestDrawFromContainerIncomplete(t *testing.T) {
	doc := document(t, `
		<div class="draw-result">
			<span class="ball">7</span>
			<span class="ball">13</span>
		</div>
	`)

	_, ok := DrawFromContainer(doc.Find("div.draw-result"))
	require.False(t, ok)
}

func TestDrawsFromText(t *testing.T) {
	text := `
		Draw of 2024-01-05: 12-25-33-41-48 with stars 2-9
		Winning numbers 5 12 23 44 49 Lucky Stars 3 8
	`

	candidates := DrawsFromText(text, "2024-01-02", 10)
	require.NotEmpty(t, candidates)

	require.Equal(t, "2024-01-05", candidates[0].RawDate)
	require.Equal(t, []int{12, 25, 33, 41, 48}, candidates[0].Main)
	require.Equal(t, []int{2, 9}, candidates[0].Stars)

	var undated *draws.Candidate
	for i := range candidates {
		if candidates[i].RawDate == "2024-01-02" {
			undated = &candidates[i]
		}
	}
	require.NotNil(t, undated)
	require.Equal(t, []int{5, 12, 23, 44, 49}, undated.Main)
	require.Equal(t, []int{3, 8}, undated.Stars)
}

func TestDrawsFromTables(t *testing.T) {
	doc := document(t, `
		<table>
			<tr><th>Date</th><th>Balls</th></tr>
			<tr>
				<td>05 Jan 2024</td>
				<td>7</td><td>13</td><td>23</td><td>32</td><td>44</td>
				<td>3</td><td>9</td>
			</tr>
			<tr><td>commentary row</td><td>n/a</td></tr>
		</table>
	`)

	candidates := DrawsFromTables(doc, 10)
	require.Len(t, candidates, 1)
	require.Equal(t, "05 Jan 2024", candidates[0].RawDate)
	require.Equal(t, []int{7, 13, 23, 32, 44}, candidates[0].Main)
	require.Equal(t, []int{3, 9}, candidates[0].Stars)
}
