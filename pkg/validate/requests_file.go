package validate

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// InputFormat — формат файла с запросами сравнения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

const maxLineBytes = 1 << 20

// Rejection — отклонённая строка файла запросов.
type Rejection struct {
	Line int
	Err  error
}

// Batch — прочитанные запросы и отклонённые строки.
type Batch struct {
	Requests []domain.ComparisonRequest
	Rejected []Rejection
}

// Summary — сводка для CLI: сколько принято и номера первых отклонённых строк.
func (b Batch) Summary() string {
	s := fmt.Sprintf("%d accepted / %d rejected", len(b.Requests), len(b.Rejected))
	if len(b.Rejected) == 0 {
		return s
	}
	lines := make([]string, 0, 3)
	for i, r := range b.Rejected {
		if i == cap(lines) {
			lines = append(lines, "...")
			break
		}
		lines = append(lines, fmt.Sprintf("%d", r.Line))
	}
	return s + " (lines " + strings.Join(lines, ", ") + ")"
}

// RequestsFromFile — запросы из файла: JSON (один запрос, ошибка при невалидном)
// или JSONL (по запросу на строку, невалидные строки попадают в Rejected).
// FormatAuto выбирает JSONL по расширению .jsonl.
func RequestsFromFile(v *RequestValidator, path string, format InputFormat) (Batch, error) {
	if format == FormatAuto {
		format = FormatJSON
		if strings.EqualFold(filepath.Ext(path), ".jsonl") {
			format = FormatJSONL
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return Batch{}, fmt.Errorf("open requests: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(f)
		if err != nil {
			return Batch{}, fmt.Errorf("read requests: %w", err)
		}
		req, err := RequestFromJSON(v, raw)
		if err != nil {
			return Batch{Rejected: []Rejection{{Line: 1, Err: err}}}, err
		}
		return Batch{Requests: []domain.ComparisonRequest{*req}}, nil
	case FormatJSONL:
		return RequestsFromJSONL(v, f)
	default:
		return Batch{}, fmt.Errorf("unsupported requests format %q", format)
	}
}

// RequestsFromJSONL — по запросу на строку; пустые строки пропускаются.
func RequestsFromJSONL(v *RequestValidator, r io.Reader) (Batch, error) {
	var b Batch

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for line := 1; sc.Scan(); line++ {
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		req, err := RequestFromJSON(v, raw)
		if err != nil {
			b.Rejected = append(b.Rejected, Rejection{Line: line, Err: err})
			continue
		}
		b.Requests = append(b.Requests, *req)
	}
	if err := sc.Err(); err != nil {
		return b, fmt.Errorf("scan requests: %w", err)
	}
	return b, nil
}
