package euromillionscom

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

func TestResultLinks(t *testing.T) {
	doc := document(t, `
		<html><body>
			<a href="/results/05-01-2024">Friday 5th January 2024</a>
			<a href="/results/02-01-2024">Tuesday 2nd January 2024</a>
			<a href="/results/05-01-2024">duplicate</a>
			<a href="/results">index, not a draw</a>
			<a href="/about">about</a>
		</body></html>
	`)

	links := resultLinks(doc, 10)
	require.Len(t, links, 2)
	require.Equal(t, "/results/05-01-2024", links[0].href)
	require.Equal(t, "05-01-2024", links[0].date)
	require.Equal(t, "02-01-2024", links[1].date)

	require.Len(t, resultLinks(doc, 1), 1)
}

func TestParseDrawPage(t *testing.T) {
	doc := document(t, `
		<html><body><main>
			<h1>EuroMillions Results</h1>
			<ul>
				<li class="ball">7</li><li class="ball">13</li><li class="ball">23</li>
				<li class="ball">32</li><li class="ball">44</li>
				<li class="lucky-star">3</li><li class="lucky-star">9</li>
			</ul>
		</main></body></html>
	`)

	candidate, err := parseDrawPage(doc, resultLink{href: "/results/05-01-2024", date: "05-01-2024"})
	require.NoError(t, err)

	record, err := draws.Validate(candidate, SourceID)
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", record.DateString())
	require.Equal(t, [5]int{7, 13, 23, 32, 44}, record.Main)
	require.Equal(t, [2]int{3, 9}, record.Stars)
}

func TestParseDrawPageIncomplete(t *testing.T) {
	doc := document(t, `<html><body><main><p>no results yet</p></main></body></html>`)

	_, err := parseDrawPage(doc, resultLink{href: "/results/05-01-2024", date: "05-01-2024"})
	require.Error(t, err)
}

func TestNewSourceDefaults(t *testing.T) {
	source := NewSource(Options{})
	require.Equal(t, SourceID, source.ID())
	require.Equal(t, 2, source.Priority())
}
