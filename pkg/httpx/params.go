package httpx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset - читает limit/offset из query с дефолтами и границами.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return
}

// ParseLocation — локация из пары query-параметров <prefix>_id и <prefix>_kind.
// Тип по умолчанию — region.
func ParseLocation(c *gin.Context, prefix string) (domain.Location, error) {
	raw := c.Query(prefix + "_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return domain.Location{}, fmt.Errorf("%s_id: invalid value %q", prefix, raw)
	}
	kind, err := domain.ParseLocationKind(c.DefaultQuery(prefix+"_kind", string(domain.KindRegion)))
	if err != nil {
		return domain.Location{}, fmt.Errorf("%s_kind: %w", prefix, err)
	}
	return domain.Location{ID: id, Kind: kind}, nil
}

// BearerToken — токен из заголовка Authorization (без префикса "Bearer ").
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}
