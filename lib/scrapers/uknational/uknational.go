// Package uknational scrapes EuroMillions results off the UK National
// Lottery draw-history page. it is the fastest and most consistent of
// the configured sources, so it normally runs at priority 1.
package uknational

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
	"euromillions-backend/lib/timezone"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const SourceID = "uk_national"

const defaultBaseUrl = "https://www.national-lottery.co.uk"
const historyPath = "/results/euromillions/draw-history"

type Options struct {
	// defaults to the production site
	BaseUrl string
	// defaults to 1
	Priority int
	// per-request budget, defaults to 15s
	Timeout time.Duration
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
		opts.Priority = 1
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
	client.SetRetryCount(3)
	client.SetRetryWaitTime(time.Second * 2)
	client.SetRetryMaxWaitTime(time.Second * 10)

	telemetry.InstrumentResty(client, "scrapers/uknational/http")
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
		Get(historyPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch draw history")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("draw history returned status %d", res.StatusCode())
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

	candidates := parseHistory(doc, limit)
	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return candidates, nil
}

var resultClassRegex = regexp.MustCompile(`(?i)draw|result|winning`)

func parseHistory(doc *goquery.Document, limit int) []draws.Candidate {
	var out []draws.Candidate

	doc.Find("div,section,article").EachWithBreak(func(_ int, container *goquery.Selection) bool {
		if !resultClassRegex.MatchString(container.AttrOr("class", "")) {
			return true
		}
		// wrappers around per-draw containers match the class regex
		// too, descend into the leaves instead of merging draws
		if containsResultContainer(container) {
			return true
		}
		candidate, ok := extract.DrawFromContainer(container)
		if !ok {
			return true
		}
		out = append(out, candidate)
		return len(out) < limit
	})

	// the markup changes often enough that pattern matching over the
	// raw page text is a worthwhile second pass
	if len(out) < limit {
		fallbackDate := timezone.LastDrawDate(timezone.Now()).Format(time.DateOnly)
		out = append(out, extract.DrawsFromText(doc.Text(), fallbackDate, limit-len(out))...)
	}

	return out
}

func containsResultContainer(container *goquery.Selection) bool {
	found := false
	container.Find("div,section,article").EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if resultClassRegex.MatchString(child.AttrOr("class", "")) {
			found = true
			return false
		}
		return true
	})
	return found
}
