//go:build integration

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// FakeESI — httptest-сервер с минимальным подмножеством ESI:
// страницы стакана по регионам, /universe/types и /universe/groups.
type FakeESI struct {
	*httptest.Server

	PageSize int

	mu     sync.Mutex
	orders map[int64][]domain.Order
	hits   int
}

// StartFakeESI — запуск сервера; regions: регион → все его заявки.
func StartFakeESI(regions map[int64][]domain.Order) *FakeESI {
	f := &FakeESI{PageSize: 1000, orders: regions}
	mux := http.NewServeMux()
	mux.HandleFunc("/markets/", f.markets)
	mux.HandleFunc("/universe/types/", f.types)
	mux.HandleFunc("/universe/groups/", f.groups)
	f.Server = httptest.NewServer(mux)
	return f
}

// OrderRequests — сколько страниц стакана было запрошено.
func (f *FakeESI) OrderRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func (f *FakeESI) markets(w http.ResponseWriter, r *http.Request) {
	// /markets/{region}/orders/
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "orders" {
		http.NotFound(w, r)
		return
	}
	region, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	f.mu.Lock()
	f.hits++
	all := f.orders[region]
	f.mu.Unlock()

	pages := (len(all) + f.PageSize - 1) / f.PageSize
	if pages == 0 {
		pages = 1
	}
	if page > pages {
		http.NotFound(w, r)
		return
	}
	lo := (page - 1) * f.PageSize
	hi := min(lo+f.PageSize, len(all))

	w.Header().Set("X-Pages", strconv.Itoa(pages))
	w.Header().Set("X-ESI-Error-Limit-Remain", "100")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(all[lo:hi])
}

func (f *FakeESI) types(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.Trim(strings.TrimPrefix(r.URL.Path, "/universe/types/"), "/"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type_id":  id,
		"name":     fmt.Sprintf("Item %d", id),
		"group_id": 18,
	})
}

func (f *FakeESI) groups(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.Trim(strings.TrimPrefix(r.URL.Path, "/universe/groups/"), "/"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"group_id": id, "category_id": 4})
}
