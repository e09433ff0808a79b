package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gunvolt24/market_arb/internal/ports"
)

// StatusErrorLimited — ESI отвечает 420, когда исчерпан лимит ошибок.
const StatusErrorLimited = 420

// Action — что делать после ответа на запрос страницы.
type Action int

const (
	ActionStage Action = iota // сохранить страницу и идти дальше
	ActionSkip                // пустая страница: ничего не сохранять, идти дальше
	ActionRetry               // подождать Delay и повторить ту же страницу
	ActionStop                // штатное завершение
	ActionFail                // невосстановимый статус
)

// Step — решение политики по одному ответу.
type Step struct {
	Action Action
	Delay  time.Duration
	Reason string
	// Warn — остановка по предохранителю (логируется как предупреждение, не ошибка).
	Warn bool
	Err  error
}

// LoopState — счётчики цикла страниц. Меняется только через PagePolicy.
type LoopState struct {
	Page        int
	EmptyStreak int
	Retries     int
	TotalPages  int
}

// PagePolicy — единая ограниченная политика цикла страниц: лимиты, функция ожидания
// и предикат остановки.
type PagePolicy struct {
	MaxPages            int
	MaxConsecutiveEmpty int
	// MaxRateLimitRetries — сколько раз подряд можно ждать лимит на одной странице
	// (0 — значение по умолчанию, < 0 — без ограничения).
	MaxRateLimitRetries int
	DefaultResetDelay   time.Duration
	// ErrorLimitFloor — при остатке лимита ошибок ниже порога делается пауза до сброса
	// (0 — значение по умолчанию, < 0 — пауза отключена).
	ErrorLimitFloor int
	// Backoff — задержка перед повтором; по умолчанию серверная задержка или DefaultResetDelay.
	Backoff func(attempt int, serverDelay time.Duration) time.Duration
}

// DefaultPolicy — значения, подобранные под лимиты ESI.
func DefaultPolicy() PagePolicy {
	return PagePolicy{
		MaxPages:            2000,
		MaxConsecutiveEmpty: 5,
		MaxRateLimitRetries: 10,
		DefaultResetDelay:   60 * time.Second,
		ErrorLimitFloor:     10,
	}
}

// withDefaults — нулевые поля заменяются значениями DefaultPolicy.
func (p PagePolicy) withDefaults() PagePolicy {
	d := DefaultPolicy()
	if p.MaxRateLimitRetries == 0 {
		p.MaxRateLimitRetries = d.MaxRateLimitRetries
	}
	if p.ErrorLimitFloor == 0 {
		p.ErrorLimitFloor = d.ErrorLimitFloor
	}
	if p.MaxPages <= 0 {
		p.MaxPages = d.MaxPages
	}
	if p.MaxConsecutiveEmpty <= 0 {
		p.MaxConsecutiveEmpty = d.MaxConsecutiveEmpty
	}
	if p.DefaultResetDelay <= 0 {
		p.DefaultResetDelay = d.DefaultResetDelay
	}
	if p.Backoff == nil {
		def := p.DefaultResetDelay
		p.Backoff = func(_ int, server time.Duration) time.Duration {
			if server > 0 {
				return server
			}
			return def
		}
	}
	return p
}

// Next — классификация ответа. Обновляет счётчики в st.
func (p PagePolicy) Next(st *LoopState, resp *ports.PageResponse) Step {
	switch {
	case resp.Status == http.StatusTooManyRequests || resp.Status == StatusErrorLimited:
		st.Retries++
		if p.MaxRateLimitRetries > 0 && st.Retries > p.MaxRateLimitRetries {
			return Step{
				Action: ActionFail,
				Err:    fmt.Errorf("rate limited %d times in a row", st.Retries-1),
			}
		}
		return Step{Action: ActionRetry, Delay: p.Backoff(st.Retries, resp.ResetAfter), Reason: "rate limited"}

	case (resp.Status == http.StatusNotFound || resp.Status == http.StatusInternalServerError) && st.Page > 1:
		return Step{Action: ActionStop, Reason: "end of data"}

	case resp.Status >= 200 && resp.Status < 300:
		st.Retries = 0
		if resp.TotalPages > 0 {
			st.TotalPages = resp.TotalPages
		}
		if len(resp.Orders) == 0 {
			st.EmptyStreak++
			if st.EmptyStreak >= p.MaxConsecutiveEmpty {
				return Step{Action: ActionStop, Warn: true,
					Reason: fmt.Sprintf("%d consecutive empty pages", st.EmptyStreak)}
			}
			return Step{Action: ActionSkip}
		}
		st.EmptyStreak = 0
		return Step{Action: ActionStage}

	default:
		return Step{Action: ActionFail, Err: fmt.Errorf("unexpected status %d", resp.Status)}
	}
}

// Done — предикат остановки после обработанной страницы.
func (p PagePolicy) Done(st *LoopState) (bool, Step) {
	if st.TotalPages > 0 && st.Page >= st.TotalPages {
		return true, Step{Action: ActionStop, Reason: "last advertised page"}
	}
	if st.Page >= p.MaxPages {
		return true, Step{Action: ActionStop, Warn: true,
			Reason: fmt.Sprintf("page limit %d reached", p.MaxPages)}
	}
	return false, Step{}
}

// Pause — проактивная пауза, если остаток лимита ошибок ниже порога.
func (p PagePolicy) Pause(resp *ports.PageResponse) time.Duration {
	if p.ErrorLimitFloor <= 0 || resp.ErrorLimitRemain < 0 || resp.ErrorLimitRemain >= p.ErrorLimitFloor {
		return 0
	}
	if resp.ResetAfter > 0 {
		return resp.ResetAfter
	}
	return p.DefaultResetDelay
}
