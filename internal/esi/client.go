// Пакет esi — HTTP-клиент удалённого API стакана заявок и метаданных предметов.
// Клиент не ретраит и не спит: статус и заголовки отдаются оркестратору как есть.
package esi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
)

const (
	DefaultBaseURL   = "https://esi.evetech.net/latest"
	DefaultUserAgent = "market-arb/1.0"
	defaultTimeout   = 30 * time.Second

	headerPages         = "X-Pages"
	headerErrLimitLeft  = "X-ESI-Error-Limit-Remain"
	headerErrLimitReset = "X-ESI-Error-Limit-Reset"
	headerRetryAfter    = "Retry-After"
)

var (
	_ ports.OrderBookAPI = (*Client)(nil)
	_ ports.ItemAPI      = (*Client)(nil)
)

// Config — параметры клиента.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// HTTPClient — готовый клиент (например, из httptest); иначе создаётся свой.
	HTTPClient *http.Client
	// Limiter — интервал между запросами метаданных; страницы стакана троттлит оркестратор
	// тем же лимитером.
	Limiter *rate.Limiter
}

// Client — клиент ESI.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter

	mu         sync.RWMutex
	categories map[int64]int64 // group_id → category_id
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		limiter:    cfg.Limiter,
		categories: make(map[int64]int64),
	}
}

// FetchOrdersPage — одна страница стакана. Поддерживаются region и structure;
// station транслируется в region на уровне оркестратора.
// Ошибка возвращается только для сетевых сбоев и нечитаемого тела успешного ответа.
func (c *Client) FetchOrdersPage(ctx context.Context, loc domain.Location, page int, token string) (*ports.PageResponse, error) {
	var path string
	switch loc.Kind {
	case domain.KindRegion:
		path = fmt.Sprintf("/markets/%d/orders/?order_type=all&page=%d", loc.ID, page)
	case domain.KindStructure:
		path = fmt.Sprintf("/markets/structures/%d/?page=%d", loc.ID, page)
	default:
		return nil, fmt.Errorf("esi: unsupported location kind %q", loc.Kind)
	}

	resp, body, err := c.get(ctx, path, token)
	if err != nil {
		return nil, err
	}

	out := &ports.PageResponse{
		Status:           resp.StatusCode,
		TotalPages:       intHeader(resp.Header, headerPages, 0),
		ErrorLimitRemain: intHeader(resp.Header, headerErrLimitLeft, -1),
		ResetAfter:       resetAfter(resp),
	}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out.Orders); err != nil {
		return nil, fmt.Errorf("esi: decode orders page %d: %w", page, err)
	}
	return out, nil
}

type typeResponse struct {
	TypeID  int64  `json:"type_id"`
	Name    string `json:"name"`
	GroupID int64  `json:"group_id"`
}

type groupResponse struct {
	GroupID    int64 `json:"group_id"`
	CategoryID int64 `json:"category_id"`
}

// FetchItem — метаданные предмета; категория берётся из группы (с мемоизацией).
// Сбой запроса группы не считается ошибкой: предмет возвращается без категории.
func (c *Client) FetchItem(ctx context.Context, itemID int64) (*domain.ItemInfo, error) {
	var tr typeResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/universe/types/%d/", itemID), &tr); err != nil {
		return nil, err
	}

	info := &domain.ItemInfo{ItemID: itemID, Name: tr.Name}
	if tr.GroupID > 0 {
		info.GroupID = domain.Int(tr.GroupID)
		if cat, ok := c.category(ctx, tr.GroupID); ok {
			info.CategoryID = domain.Int(cat)
		}
	}
	return info, nil
}

func (c *Client) category(ctx context.Context, groupID int64) (int64, bool) {
	c.mu.RLock()
	cat, ok := c.categories[groupID]
	c.mu.RUnlock()
	if ok {
		return cat, true
	}

	var gr groupResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/universe/groups/%d/", groupID), &gr); err != nil {
		return 0, false
	}

	c.mu.Lock()
	c.categories[groupID] = gr.CategoryID
	c.mu.Unlock()
	return gr.CategoryID, true
}

// StatusError — неуспешный ответ при запросе метаданных.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("esi: %s returned status %d", e.Path, e.Status)
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("esi: throttle %s: %w", path, err)
		}
	}
	resp, body, err := c.get(ctx, path, "")
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrItemNotFound
	case resp.StatusCode != http.StatusOK:
		return &StatusError{Status: resp.StatusCode, Path: path}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("esi: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("esi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("esi: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("esi: read body %s: %w", path, err)
	}
	return resp, body, nil
}

// resetAfter — задержка до повторной попытки: Retry-After для 429,
// иначе X-ESI-Error-Limit-Reset. 0 — сервер ничего не сообщил.
func resetAfter(resp *http.Response) time.Duration {
	if resp.StatusCode == http.StatusTooManyRequests {
		if s := intHeader(resp.Header, headerRetryAfter, 0); s > 0 {
			return time.Duration(s) * time.Second
		}
	}
	if s := intHeader(resp.Header, headerErrLimitReset, 0); s > 0 {
		return time.Duration(s) * time.Second
	}
	return 0
}

func intHeader(h http.Header, name string, def int) int {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
