package wfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Kwasin02/estimator-warframe/internal/model"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.warframe.market/v2"

var ErrUpstream = errors.New("wfm upstream error")

// Client talks to the warframe.market v2 API. It never caches; the catalog
// cache sits above it. Order-book failures are classified into the returned
// OrderBook instead of errors so the estimator can degrade per item.
type Client struct {
	baseURL        string
	http           *http.Client
	orderTimeout   time.Duration
	catalogTimeout time.Duration
	log            *zap.Logger
}

func NewClient(baseURL string, orderTimeout, catalogTimeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:        baseURL,
		http:           &http.Client{},
		orderTimeout:   orderTimeout,
		catalogTimeout: catalogTimeout,
		log:            log,
	}
}

// FetchOrderBook fetches the order book for one item slug. Platform is
// fixed to pc; crossplay is passed through as a header. A 404 is reported
// as NotFound, every other failure as Failed.
func (c *Client) FetchOrderBook(ctx context.Context, slug string, crossplay bool) model.OrderBook {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/orders/item/%s", c.baseURL, url.PathEscape(slug))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.OrderBook{Failed: true}
	}
	req.Header.Set("Platform", "pc")
	req.Header.Set("CrossPlay", strconv.FormatBool(crossplay))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("order book fetch failed", zap.String("slug", slug), zap.Error(err))
		return model.OrderBook{Failed: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.OrderBook{NotFound: true}
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("order book fetch bad status", zap.String("slug", slug), zap.Int("status", resp.StatusCode))
		return model.OrderBook{Failed: true}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.OrderBook{Failed: true}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.Warn("order book envelope malformed", zap.String("slug", slug), zap.Error(err))
		return model.OrderBook{Failed: true}
	}
	if env.hasError() {
		c.log.Warn("order book envelope reported error", zap.String("slug", slug), zap.ByteString("error", env.Error))
		return model.OrderBook{Failed: true}
	}

	arr := extractArray(env.Data, orderArrayStrategies)
	if arr == nil {
		return model.OrderBook{Orders: []model.SellOrder{}}
	}

	var orders []model.SellOrder
	if err := json.Unmarshal(arr, &orders); err != nil {
		c.log.Warn("order array malformed", zap.String("slug", slug), zap.Error(err))
		return model.OrderBook{Failed: true}
	}
	return model.OrderBook{Orders: orders}
}

// catalogItem tolerates both upstream catalog shapes: display fields flat
// on the item, or nested under i18n by language.
type catalogItem struct {
	Slug string   `json:"slug"`
	Tags []string `json:"tags"`

	Name  string  `json:"name"`
	Icon  *string `json:"icon"`
	Thumb *string `json:"thumb"`

	I18n map[string]struct {
		Name  string  `json:"name"`
		Icon  *string `json:"icon"`
		Thumb *string `json:"thumb"`
	} `json:"i18n"`
}

// FetchItems fetches the full tradable-item catalog. Unlike order fetches
// it returns an error, so the cache layer can serve a stale snapshot.
func (c *Client) FetchItems(ctx context.Context) ([]model.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.catalogTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/items", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Platform", "pc")
	req.Header.Set("Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: items returned %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed items envelope: %v", ErrUpstream, err)
	}
	if env.hasError() {
		return nil, fmt.Errorf("%w: items envelope reported %s", ErrUpstream, env.Error)
	}

	arr := asArray(env.Data)
	if arr == nil {
		return []model.CatalogItem{}, nil
	}

	var raw []catalogItem
	if err := json.Unmarshal(arr, &raw); err != nil {
		return nil, fmt.Errorf("%w: malformed items array: %v", ErrUpstream, err)
	}

	items := make([]model.CatalogItem, 0, len(raw))
	for _, it := range raw {
		items = append(items, it.flatten())
	}
	c.log.Info("catalog fetched", zap.Int("items", len(items)))
	return items, nil
}

func (it catalogItem) flatten() model.CatalogItem {
	out := model.CatalogItem{
		Slug:  it.Slug,
		Name:  it.Name,
		Icon:  it.Icon,
		Thumb: it.Thumb,
		Tags:  it.Tags,
	}
	if en, ok := it.I18n["en"]; ok {
		if en.Name != "" {
			out.Name = en.Name
		}
		if en.Icon != nil {
			out.Icon = en.Icon
		}
		if en.Thumb != nil {
			out.Thumb = en.Thumb
		}
	}
	if out.Name == "" {
		out.Name = it.Slug
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}
