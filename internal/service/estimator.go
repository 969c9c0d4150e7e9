package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Kwasin02/estimator-warframe/internal/model"

	"go.uber.org/zap"
)

// OrderBookFetcher is the outbound dependency of the estimator, satisfied
// by wfm.Client.
type OrderBookFetcher interface {
	FetchOrderBook(ctx context.Context, slug string, crossplay bool) model.OrderBook
}

// EstimatorService prices a shopping list against the live sell-order
// book. Items are fetched strictly one at a time, in request order: the
// upstream rate limit is the binding constraint, so per-item fan-out must
// stay sequential even though the surrounding process is concurrent.
type EstimatorService struct {
	wfm OrderBookFetcher
	log *zap.Logger
	now func() time.Time
}

func NewEstimatorService(wfm OrderBookFetcher, log *zap.Logger) *EstimatorService {
	return &EstimatorService{wfm: wfm, log: log, now: time.Now}
}

// Estimate resolves each requested line to its best available seller and
// aggregates a total. A failed line never aborts the request: the response
// always carries one line per requested item, with null price fields and
// an unavailable entry when no seller could be chosen.
func (s *EstimatorService) Estimate(ctx context.Context, req *model.EstimateRequest) *model.EstimateResponse {
	crossplay := true
	if req.Crossplay != nil {
		crossplay = *req.Crossplay
	}

	items := make([]model.EstimatedItem, 0, len(req.Items))
	unavailable := []model.UnavailableItem{}
	total := 0.0

	for _, in := range req.Items {
		book := s.wfm.FetchOrderBook(ctx, in.Slug, crossplay)

		var reason model.UnavailableReason
		switch {
		case book.NotFound:
			reason = model.ReasonNotFound
		case book.Failed:
			reason = model.ReasonUpstream
		}

		if reason == "" {
			if best, ok := pickBestSeller(filterSellOrders(book.Orders)); ok {
				unitPrice := best.Platinum
				subtotal := unitPrice * float64(in.Quantity)
				total += subtotal
				items = append(items, model.EstimatedItem{
					Slug:               in.Slug,
					Quantity:           in.Quantity,
					EstimatedUnitPrice: &unitPrice,
					Subtotal:           &subtotal,
					Seller: &model.Seller{
						OrderID:    best.ID,
						IngameName: best.User.IngameName,
						Status:     best.User.Status,
						Reputation: best.User.Reputation,
						Price:      best.Platinum,
						Quantity:   best.Quantity,
					},
				})
				continue
			}
			reason = model.ReasonNoSellOrders
		}

		s.log.Debug("item unavailable", zap.String("slug", in.Slug), zap.String("reason", string(reason)))
		unavailable = append(unavailable, model.UnavailableItem{Slug: in.Slug, Reason: reason})
		items = append(items, model.EstimatedItem{Slug: in.Slug, Quantity: in.Quantity})
	}

	return &model.EstimateResponse{
		Platform:    "pc",
		Crossplay:   crossplay,
		Currency:    "platinum",
		Total:       total,
		Items:       items,
		Unavailable: unavailable,
		GeneratedAt: s.now().UTC(),
	}
}

// filterSellOrders keeps orders that can actually be bought from: sell
// side, finite positive price, positive quantity, a named seller, and not
// explicitly hidden (a missing visible flag counts as visible).
func filterSellOrders(orders []model.SellOrder) []model.SellOrder {
	out := make([]model.SellOrder, 0, len(orders))
	for _, o := range orders {
		if o.Type != "sell" {
			continue
		}
		if math.IsNaN(o.Platinum) || math.IsInf(o.Platinum, 0) || o.Platinum <= 0 {
			continue
		}
		if o.Quantity <= 0 {
			continue
		}
		if o.User.IngameName == "" {
			continue
		}
		if o.Visible != nil && !*o.Visible {
			continue
		}
		out = append(out, o)
	}
	return out
}

// pickBestSeller ranks candidates by presence status, then price (lower
// wins), then reputation (higher wins, missing counts as 0), then quantity
// (higher wins). The sort is stable so exact ties keep arrival order.
func pickBestSeller(orders []model.SellOrder) (model.SellOrder, bool) {
	if len(orders) == 0 {
		return model.SellOrder{}, false
	}
	ranked := make([]model.SellOrder, len(orders))
	copy(ranked, orders)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if sa, sb := statusRank(a.User.Status), statusRank(b.User.Status); sa != sb {
			return sa < sb
		}
		if a.Platinum != b.Platinum {
			return a.Platinum < b.Platinum
		}
		if ra, rb := reputationOf(a), reputationOf(b); ra != rb {
			return ra > rb
		}
		return a.Quantity > b.Quantity
	})
	return ranked[0], true
}

// statusRank orders presence statuses most-responsive first. Unknown
// statuses rank alongside offline.
func statusRank(s model.UserStatus) int {
	switch s {
	case model.StatusInGame:
		return 0
	case model.StatusOnline:
		return 1
	case model.StatusOffline:
		return 2
	case model.StatusInvisible:
		return 3
	default:
		return 2
	}
}

func reputationOf(o model.SellOrder) float64 {
	if o.User.Reputation == nil {
		return 0
	}
	return *o.User.Reputation
}
