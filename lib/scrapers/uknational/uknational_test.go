package uknational

import (
	"strings"
	"testing"
	"euromillions-backend/lib/draws"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const historyFixture = `
<html><body>
	<section class="results draw-history">
		<article class="draw-result">
			<span class="draw-date">Friday 5 January 2024</span>
			<li class="ball">7</li><li class="ball">13</li><li class="ball">23</li>
			<li class="ball">32</li><li class="ball">44</li>
			<li class="lucky-star">3</li><li class="lucky-star">9</li>
			<span class="jackpot">£54 Million</span>
		</article>
		<article class="draw-result">
			<span class="draw-date">Tuesday 2 January 2024</span>
			<li class="ball">1</li><li class="ball">5</li><li class="ball">12</li>
			<li class="ball">29</li><li class="ball">47</li>
			<li class="lucky-star">2</li><li class="lucky-star">11</li>
		</article>
	</section>
	<footer>promotional text, no draws here</footer>
</body></html>`

func TestParseHistory(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(historyFixture))
	if err != nil {
		t.Fatal(err)
	}

	candidates := parseHistory(doc, 2)
	require.Len(t, candidates, 2)

	first, err := draws.Validate(candidates[0], SourceID)
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", first.DateString())
	require.Equal(t, [5]int{7, 13, 23, 32, 44}, first.Main)
	require.Equal(t, [2]int{3, 9}, first.Stars)
	require.Equal(t, 54_000_000.0, first.Jackpot)

	second, err := draws.Validate(candidates[1], SourceID)
	require.NoError(t, err)
	require.Equal(t, "2024-01-02", second.DateString())
}

func TestParseHistoryTextFallback(t *testing.T) {
	page := `<html><body>
		<p>Results for 2024-01-05: 12-25-33-41-48 and stars 2-9</p>
	</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}

	candidates := parseHistory(doc, 5)
	require.NotEmpty(t, candidates)

	record, err := draws.Validate(candidates[0], SourceID)
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", record.DateString())
	require.Equal(t, [5]int{12, 25, 33, 41, 48}, record.Main)
}

func TestNewSourceDefaults(t *testing.T) {
	source := NewSource(Options{})
	require.Equal(t, SourceID, source.ID())
	require.Equal(t, 1, source.Priority())
}
