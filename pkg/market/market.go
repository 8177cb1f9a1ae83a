// Package market reads modal crop prices (₹/quintal) from an HTML price
// bulletin so the reference price column can be refreshed.
package market

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/montanaflynn/stats"

	"agripredict/entities"
)

const defaultMaxBytes = 1500000

type Fetcher struct {
	client   *http.Client
	allow    map[string]bool // empty allows every host
	maxBytes int64
}

type Option func(*Fetcher)

// WithAllowedHosts restricts fetching to the given hostnames.
func WithAllowedHosts(hosts ...string) Option {
	return func(f *Fetcher) {
		for _, h := range hosts {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				f.allow[h] = true
			}
		}
	}
}

func WithClient(c *http.Client) Option { return func(f *Fetcher) { f.client = c } }

func WithMaxBytes(n int64) Option { return func(f *Fetcher) { f.maxBytes = n } }

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 20 * time.Second},
		allow:    map[string]bool{},
		maxBytes: defaultMaxBytes,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// FetchQuotes downloads the page at u and parses it with ParseQuotes.
func (f *Fetcher) FetchQuotes(ctx context.Context, u string) (map[entities.Crop]float64, error) {
	pu, err := url.Parse(u)
	if err != nil || (pu.Scheme != "http" && pu.Scheme != "https") {
		return nil, fmt.Errorf("bad url %q", u)
	}
	if len(f.allow) > 0 && !f.allow[strings.ToLower(pu.Hostname())] {
		return nil, fmt.Errorf("host %q is not allowed", pu.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("page too large")
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); ct != "" && !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("unsupported content-type: %s", ct)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > f.maxBytes {
		return nil, fmt.Errorf("page too large")
	}
	return ParseQuotes(bytes.NewReader(b))
}

var (
	cropHeaders  = []string{"commodity", "crop", "item"}
	priceHeaders = []string{"modalprice", "modal", "price", "marketprice"}

	cropAliases = map[string]entities.Crop{
		"rice":           entities.Rice,
		"paddy":          entities.Rice,
		"maize":          entities.Maize,
		"corn":           entities.Maize,
		"moong":          entities.Moong,
		"greengram":      entities.Moong,
		"moonggreengram": entities.Moong,
		"urad":           entities.Urad,
		"blackgram":      entities.Urad,
		"uradblackgram":  entities.Urad,
		"groundnut":      entities.Groundnut,
		"peanut":         entities.Groundnut,
	}
)

func norm(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchCrop maps a commodity cell such as "Paddy(Dhan)(Common)" to a crop.
func matchCrop(cell string) (entities.Crop, bool) {
	head := cell
	if i := strings.IndexAny(cell, "(/-"); i > 0 {
		head = cell[:i]
	}
	candidates := []string{cell, head}
	if f := strings.Fields(head); len(f) > 0 {
		candidates = append(candidates, f[0])
	}
	for _, s := range candidates {
		if c, ok := cropAliases[norm(s)]; ok {
			return c, true
		}
	}
	return "", false
}

func parsePrice(s string) (float64, error) {
	s = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "", "/-", "").Replace(s)
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseQuotes reads the first table with recognisable commodity and price
// columns. Several rows for one crop are reduced to their median.
func ParseQuotes(r io.Reader) (map[entities.Crop]float64, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var (
		found  bool
		prices = map[entities.Crop]stats.Float64Data{}
	)
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		rows := t.Find("tr")
		if rows.Length() < 2 {
			return true
		}
		head := cells(rows.First())
		ci, pi := column(head, cropHeaders), column(head, priceHeaders)
		if ci < 0 || pi < 0 {
			return true
		}
		found = true
		rows.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
			row := cells(tr)
			if ci >= len(row) || pi >= len(row) {
				return
			}
			crop, ok := matchCrop(row[ci])
			if !ok {
				return
			}
			p, err := parsePrice(row[pi])
			if err != nil || p <= 0 {
				return
			}
			prices[crop] = append(prices[crop], p)
		})
		return false
	})
	if !found {
		return nil, fmt.Errorf("no price table found")
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("price table lists none of the supported crops")
	}

	out := make(map[entities.Crop]float64, len(prices))
	for c, ps := range prices {
		m, err := ps.Median()
		if err != nil {
			return nil, err
		}
		out[c] = m
	}
	return out, nil
}

func cells(tr *goquery.Selection) []string {
	var out []string
	tr.Find("th,td").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func column(head []string, keys []string) int {
	for _, k := range keys {
		for i, h := range head {
			if norm(h) == k {
				return i
			}
		}
	}
	return -1
}
