package sgs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"BCBSeries/internal/domain/errs"
	"BCBSeries/internal/domain/models"
	drepo "BCBSeries/internal/domain/repository"
	"BCBSeries/pkg/logger"
	"BCBSeries/pkg/util"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.bcb.gov.br/dados/serie/bcdata.sgs"

	// MaxLastCount bounds the last-N endpoint.
	MaxLastCount = 1000

	defaultSource = "Banco Central do Brasil"

	NoteFromCatalog = "metadata from internal catalog"
	NoteProbeOnly   = "series found, detailed metadata unavailable"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// Client builds SGS URLs, delegates to Fetcher and decodes the responses.
type Client struct {
	fetcher  *Fetcher
	catalog  drepo.Catalog
	baseURL  string
	cache    drepo.BytesCache
	cacheTTL time.Duration
	metrics  drepo.Metrics
	log      *logger.Logger
}

var _ drepo.SeriesSource = (*Client)(nil)

// NewClient creates a series client. catalog may be nil, in which case the
// metadata fallback skips the catalog step.
func NewClient(fetcher *Fetcher, catalog drepo.Catalog, opts ...ClientOption) *Client {
	c := &Client{
		fetcher: fetcher,
		catalog: catalog,
		baseURL: DefaultBaseURL,
		metrics: nopMetrics{},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithCache enables read-through caching of successful bodies.
func WithCache(cache drepo.BytesCache, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithClientMetrics(m drepo.Metrics) ClientOption {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

func WithClientLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// SeriesURL is the root URL of a series.
func (c *Client) SeriesURL(code int) string {
	return fmt.Sprintf("%s.%d", c.baseURL, code)
}

// RangeURL builds the data query. Dates go out as literal dd/MM/yyyy and
// empty bounds are omitted.
func (c *Client) RangeURL(code int, from, to string) string {
	u := c.SeriesURL(code) + "/dados?formato=json"
	if from != "" {
		u += "&dataInicial=" + queryDate(from)
	}
	if to != "" {
		u += "&dataFinal=" + queryDate(to)
	}
	return u
}

// queryDate formats d for the provider and escapes everything except the
// slashes, which RFC 3986 allows in a query.
func queryDate(d string) string {
	return strings.ReplaceAll(url.QueryEscape(util.FormatDateForAPI(d)), "%2F", "/")
}

// LastURL builds the last-N query.
func (c *Client) LastURL(code, count int) string {
	return fmt.Sprintf("%s/dados/ultimos/%d?formato=json", c.SeriesURL(code), count)
}

// MetadataURL builds the metadata query.
func (c *Client) MetadataURL(code int) string {
	return c.SeriesURL(code) + "/metadados?formato=json"
}

// FetchRange returns the observations between from and to. Either bound may
// be empty; omitting both returns the full history.
func (c *Client) FetchRange(ctx context.Context, code int, from, to string) ([]models.SeriesPoint, error) {
	if code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", code)
	}
	u := c.RangeURL(code, from, to)
	body, cached, err := c.get(ctx, "range", u)
	if err != nil {
		return nil, fmt.Errorf("series %d: %w", code, err)
	}
	points, err := decodePoints(body)
	if err != nil {
		return nil, fmt.Errorf("series %d: %w", code, err)
	}
	if !cached {
		c.remember(ctx, u, body)
	}
	return points, nil
}

// FetchLast returns the most recent count observations, 1 <= count <= 1000.
func (c *Client) FetchLast(ctx context.Context, code int, count int) ([]models.SeriesPoint, error) {
	if code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", code)
	}
	if count < 1 || count > MaxLastCount {
		return nil, errs.Invalidf("count must be between 1 and %d, got %d", MaxLastCount, count)
	}
	u := c.LastURL(code, count)
	body, cached, err := c.get(ctx, "last", u)
	if err != nil {
		return nil, fmt.Errorf("series %d: %w", code, err)
	}
	points, err := decodePoints(body)
	if err != nil {
		return nil, fmt.Errorf("series %d: %w", code, err)
	}
	if !cached {
		c.remember(ctx, u, body)
	}
	return points, nil
}

// FetchMetadata tries the metadata endpoint, then the catalog, then a
// one-point probe. It fails with ErrNotFound only when all three fail.
func (c *Client) FetchMetadata(ctx context.Context, code int) (*models.SeriesMetadata, error) {
	if code <= 0 {
		return nil, errs.Invalidf("series code must be positive, got %d", code)
	}

	desc, inCatalog := c.lookup(code)

	u := c.MetadataURL(code)
	body, cached, err := c.get(ctx, "metadata", u)
	if err == nil {
		md, derr := c.decodeMetadata(code, body, desc, inCatalog)
		if derr == nil {
			if !cached {
				c.remember(ctx, u, body)
			}
			return md, nil
		}
		err = derr
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	c.log.Debug("sgs metadata endpoint unavailable, falling back",
		logger.Int("code", code),
		logger.Error(err),
	)

	if inCatalog {
		return &models.SeriesMetadata{
			Code:      code,
			Name:      desc.Name,
			Frequency: desc.Frequency,
			Category:  desc.Category,
			Source:    defaultSource,
			QueryURL:  c.RangeURL(code, "", ""),
			LastURL:   c.LastURL(code, 10),
			Note:      NoteFromCatalog,
			Origin:    models.OriginCatalog,
		}, nil
	}

	points, err := c.FetchLast(ctx, code, 1)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, errs.ErrNoData) || errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("series %d: %w", code, errs.ErrNotFound)
		}
		return nil, err
	}

	last := points[len(points)-1]
	return &models.SeriesMetadata{
		Code:      code,
		Name:      fmt.Sprintf("Série %d", code),
		Source:    defaultSource,
		QueryURL:  c.RangeURL(code, "", ""),
		LastValue: &last,
		Note:      NoteProbeOnly,
		Origin:    models.OriginProbe,
	}, nil
}

func (c *Client) lookup(code int) (models.SeriesDescriptor, bool) {
	if c.catalog == nil {
		return models.SeriesDescriptor{}, false
	}
	return c.catalog.Lookup(code)
}

// get reads through the cache when one is configured and reports whether
// the body came from it. Callers store fresh bodies with remember once they
// decode.
func (c *Client) get(ctx context.Context, endpoint, u string) (json.RawMessage, bool, error) {
	if c.cache != nil {
		b, ok, err := c.cache.GetBytes(ctx, u)
		switch {
		case err != nil:
			c.metrics.RecordCache("error")
			c.log.Warn("sgs cache get failed", logger.String("url", u), logger.Error(err))
		case ok:
			c.metrics.RecordCache("hit")
			return json.RawMessage(b), true, nil
		default:
			c.metrics.RecordCache("miss")
		}
	}

	body, err := c.fetcher.Fetch(ctx, endpoint, u)
	if err != nil {
		return nil, false, err
	}
	return body, false, nil
}

func (c *Client) remember(ctx context.Context, u string, body json.RawMessage) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SetBytes(ctx, u, body, c.cacheTTL); err != nil {
		c.log.Warn("sgs cache set failed", logger.String("url", u), logger.Error(err))
	}
}

// minNormal is the smallest positive normal float64.
const minNormal = 0x1p-1022

type wirePoint struct {
	Data  *string         `json:"data"`
	Valor json.RawMessage `json:"valor"`
}

// decodePoints parses a provider array. An empty array is ErrNoData; anything
// else that is not an array of well-formed points is ErrIntegrity.
func decodePoints(body json.RawMessage) ([]models.SeriesPoint, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errs.Integrityf("expected a JSON array of observations")
	}

	var raw []wirePoint
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errs.Integrityf("decode observations: %v", err)
	}
	if len(raw) == 0 {
		return nil, errs.ErrNoData
	}

	points := make([]models.SeriesPoint, 0, len(raw))
	for i, r := range raw {
		if r.Data == nil {
			return nil, errs.Integrityf("observation %d: missing date", i)
		}
		date, err := util.ParseBCBDate(*r.Data)
		if err != nil {
			return nil, errs.Integrityf("observation %d: %v", i, err)
		}
		value, err := parseValor(r.Valor)
		if err != nil {
			return nil, errs.Integrityf("observation %d (%s): %v", i, *r.Data, err)
		}
		points = append(points, models.SeriesPoint{Date: date, Value: value})
	}
	return points, nil
}

// parseValor accepts the provider's quoted decimal and, leniently, a bare
// JSON number. Null, empty, non-numeric and out of range values are rejected.
func parseValor(raw json.RawMessage) (float64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, errors.New("missing value")
	}
	if text[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("unparseable value %q", text)
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("value %q out of range", text)
	}
	if v != 0 && math.Abs(v) < minNormal {
		return 0, fmt.Errorf("value %q out of range", text)
	}
	return v, nil
}

type wireMetadata struct {
	Code      json.RawMessage `json:"codigo"`
	Name      string          `json:"nome"`
	Unit      string          `json:"unidade"`
	Frequency string          `json:"periodicidade"`
	Source    string          `json:"fonte"`
	Special   json.RawMessage `json:"especial"`
}

func (c *Client) decodeMetadata(code int, body json.RawMessage, desc models.SeriesDescriptor, inCatalog bool) (*models.SeriesMetadata, error) {
	var w wireMetadata
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, errs.Integrityf("decode metadata: %v", err)
	}

	md := &models.SeriesMetadata{
		Code:      code,
		Name:      firstNonEmpty(w.Name, desc.Name, fmt.Sprintf("Série %d", code)),
		Unit:      firstNonEmpty(w.Unit, "Não informada"),
		Frequency: firstNonEmpty(w.Frequency, desc.Frequency, "Não informada"),
		Source:    firstNonEmpty(w.Source, defaultSource),
		Category:  "Não categorizada",
		Special:   truthy(w.Special),
		QueryURL:  c.RangeURL(code, "", ""),
		LastURL:   c.LastURL(code, 10),
		Origin:    models.OriginAPI,
	}
	if n, err := strconv.Atoi(strings.Trim(string(w.Code), `"`)); err == nil && n > 0 {
		md.Code = n
	}
	if inCatalog {
		md.Category = desc.Category
	}
	return md, nil
}

// truthy reads a flag sent as a JSON bool or as "S"/"true".
func truthy(raw json.RawMessage) bool {
	switch strings.ToLower(strings.Trim(string(raw), `"`)) {
	case "true", "s", "sim", "1":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
