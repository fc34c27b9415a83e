// Package euromillionscom scrapes euro-millions.com, which publishes
// one page per draw behind date-stamped result links. slower than the
// UK source (one request per draw) but covers a deeper archive.
package euromillionscom

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"
	"euromillions-backend/lib/acquire"
	"euromillions-backend/lib/draws"
	"euromillions-backend/lib/restyutil"
	"euromillions-backend/lib/scrapers/extract"
	"euromillions-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const SourceID = "euro_millions_com"

const defaultBaseUrl = "https://www.euro-millions.com"
const resultsPath = "/results"

// spacing between per-draw requests, the site rate limits eagerly
const requestDelay = time.Millisecond * 500

type Options struct {
	BaseUrl string
	// defaults to 2
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
		opts.Priority = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 15
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", browserUserAgent)
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(time.Second * 2)

	telemetry.InstrumentResty(client, "scrapers/euromillionscom/http")
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
		span.SetStatus(codes.Error, "failed to fetch results index")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("results index returned status %d", res.StatusCode())
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

	links := resultLinks(doc, limit)
	span.SetAttributes(attribute.Int("result_links", len(links)))

	var out []draws.Candidate
	for i, link := range links {
		if i > 0 {
			select {
			case <-time.After(requestDelay):
			case <-ctx.Done():
				return out, ctx.Err()
			}
		}

		candidate, err := s.fetchDraw(ctx, link)
		if err != nil {
			// one bad draw page shouldn't sink the rest
			span.AddEvent("skipped draw page", trace.WithAttributes(
				attribute.String("href", link.href),
				attribute.String("err", err.Error()),
			))
			continue
		}
		out = append(out, candidate)
	}

	return out, nil
}

var resultLinkRegex = regexp.MustCompile(`/results/(\d{2}-\d{2}-\d{4})$`)

type resultLink struct {
	href string
	// DD-MM-YYYY, straight out of the url
	date string
}

func resultLinks(doc *goquery.Document, limit int) []resultLink {
	var out []resultLink
	seen := map[string]bool{}

	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href := anchor.AttrOr("href", "")
		groups := resultLinkRegex.FindStringSubmatch(href)
		if groups == nil || seen[groups[1]] {
			return true
		}
		seen[groups[1]] = true
		out = append(out, resultLink{href: href, date: groups[1]})
		return len(out) < limit
	})

	return out
}

func (s *Source) fetchDraw(ctx context.Context, link resultLink) (draws.Candidate, error) {
	ctx, span := tracer.Start(ctx, "fetchDraw")
	defer span.End()
	span.SetAttributes(attribute.String("href", link.href))

	res, err := s.client.R().
		SetContext(ctx).
		Get(link.href)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch draw page")
		return draws.Candidate{}, err
	}
	if res.IsError() {
		err := fmt.Errorf("draw page returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return draws.Candidate{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return draws.Candidate{}, err
	}

	return parseDrawPage(doc, link)
}

func parseDrawPage(doc *goquery.Document, link resultLink) (draws.Candidate, error) {
	container := doc.Find("main")
	if container.Length() == 0 {
		container = doc.Find("body")
	}

	candidate, ok := extract.DrawFromContainer(container)
	if !ok {
		return draws.Candidate{}, fmt.Errorf("no complete draw on page %s", link.href)
	}
	// the url itself carries the draw date, trust it when the page
	// doesn't label one
	if candidate.RawDate == "" {
		candidate.RawDate = link.date
	}
	return candidate, nil
}
