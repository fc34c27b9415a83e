// Package fdj scrapes the Française des Jeux results page. FDJ ships
// its draw data as JSON blobs embedded in script tags, so the primary
// strategy is a recursive search through those, with plain table
// parsing as the fallback.
package fdj

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"euromillions-backend/lib/acquire"
	"euromillions-backend/lib/draws"
	"euromillions-backend/lib/htmlutil"
	"euromillions-backend/lib/restyutil"
	"euromillions-backend/lib/scrapers/extract"
	"euromillions-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const SourceID = "fdj_france"

const defaultBaseUrl = "https://www.fdj.fr"
const resultsPath = "/resultats-et-rapports-officiels/euromillions"

type Options struct {
	BaseUrl string
	// defaults to 3
	Priority int
	Timeout  time.Duration
}

type Source struct {
	client   *resty.Client
	priority int
}

var _ acquire.Source = (*Source)(nil)

func NewSource(opts Options) *Source {
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if opts.Priority == 0 {
		opts.Priority = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 15
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", browserUserAgent)
	client.SetHeader("accept-language", "fr-FR,fr;q=0.9,en;q=0.8")
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(time.Second * 2)
	client.SetRetryMaxWaitTime(time.Second * 10)

	telemetry.InstrumentResty(client, "scrapers/fdj/http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Source{client: client, priority: opts.Priority}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Priority() int {
	return s.priority
}

func (s *Source) Fetch(ctx context.Context, limit int) ([]draws.Candidate, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	res, err := s.client.R().
		SetContext(ctx).
		Get(resultsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch results page")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("results page returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	candidates := parseResults(doc, limit)
	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return candidates, nil
}

func parseResults(doc *goquery.Document, limit int) []draws.Candidate {
	var out []draws.Candidate

	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		payload := htmlutil.GetText(script.Nodes[0])
		if !gjson.Valid(payload) {
			return true
		}
		searchJson(gjson.Parse(payload), 0, limit, &out)
		return len(out) < limit
	})

	if len(out) == 0 {
		out = extract.DrawsFromTables(doc, limit)
	}
	return out
}

var dateKeys = []string{"date", "draw_date", "drawDate", "when", "dateDrawn"}
var mainKeys = []string{"numbers", "main_numbers", "mainNumbers", "balls", "boules"}
var starKeys = []string{"stars", "lucky_stars", "luckyStars", "euroNumbers", "etoiles"}

const maxSearchDepth = 5

// walks an arbitrary JSON structure looking for objects shaped like a
// draw: some date key next to number and star arrays.
func searchJson(value gjson.Result, depth, limit int, out *[]draws.Candidate) {
	if depth > maxSearchDepth || len(*out) >= limit {
		return
	}

	if value.IsObject() {
		if candidate, ok := drawFromJson(value); ok {
			*out = append(*out, candidate)
			return
		}
		value.ForEach(func(_, child gjson.Result) bool {
			searchJson(child, depth+1, limit, out)
			return len(*out) < limit
		})
		return
	}

	if value.IsArray() {
		value.ForEach(func(_, child gjson.Result) bool {
			searchJson(child, depth+1, limit, out)
			return len(*out) < limit
		})
	}
}

func firstKey(obj gjson.Result, keys []string) gjson.Result {
	for _, key := range keys {
		found := obj.Get(key)
		if found.Exists() {
			return found
		}
	}
	return gjson.Result{}
}

func intList(value gjson.Result) []int {
	if !value.IsArray() {
		return nil
	}
	var out []int
	for _, item := range value.Array() {
		out = append(out, int(item.Int()))
	}
	return out
}

func drawFromJson(obj gjson.Result) (draws.Candidate, bool) {
	date := firstKey(obj, dateKeys)
	main := intList(firstKey(obj, mainKeys))
	stars := intList(firstKey(obj, starKeys))

	if !date.Exists() || len(main) != draws.MainCount || len(stars) != draws.StarCount {
		return draws.Candidate{}, false
	}

	return draws.Candidate{
		RawDate: date.String(),
		Main:    main,
		Stars:   stars,
		Jackpot: obj.Get("jackpot").Float(),
	}, true
}
