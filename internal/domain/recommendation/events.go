package recommendation

import (
	"context"
	"time"

	"github.com/CodingBot000/miracle3day-sub008/internal/domain/survey"
)

// ComputedEvent is the analytics record emitted after a successful
// recommendation call.  It deliberately carries only aggregate figures,
// never the survey answers themselves.
type ComputedEvent struct {
	EventID       string             `json:"eventId"`
	Priority      survey.Priority    `json:"priority"`
	Budget        survey.BudgetRange `json:"budget"`
	ItemCount     int                `json:"itemCount"`
	TotalPriceKRW int64              `json:"totalPriceKRW"`
	TotalPriceUSD int64              `json:"totalPriceUSD"`
	WarningCount  int                `json:"warningCount"`
	ComputedAt    time.Time          `json:"computedAt"`
}

// EventPublisher is the port through which computed-recommendation events
// reach the analytics stream.  Implementations must be safe for concurrent
// use; publish failures are logged by callers and never surfaced to users.
type EventPublisher interface {
	PublishComputed(ctx context.Context, ev ComputedEvent) error
}
