package service

import (
	"context"
	"testing"
	"time"

	"github.com/Kwasin02/estimator-warframe/internal/model"

	"go.uber.org/zap"
)

type stubFetcher struct {
	books map[string]model.OrderBook
	calls []string
}

func (f *stubFetcher) FetchOrderBook(_ context.Context, slug string, _ bool) model.OrderBook {
	f.calls = append(f.calls, slug)
	return f.books[slug]
}

func sellOrder(id string, price float64, qty int, status model.UserStatus, rep float64) model.SellOrder {
	return model.SellOrder{
		ID:       id,
		Type:     "sell",
		Platinum: price,
		Quantity: qty,
		User:     model.OrderUser{IngameName: "seller_" + id, Status: status, Reputation: &rep},
	}
}

func newEstimator(books map[string]model.OrderBook) (*EstimatorService, *stubFetcher) {
	f := &stubFetcher{books: books}
	return NewEstimatorService(f, zap.NewNop()), f
}

func TestEstimateHappyPath(t *testing.T) {
	svc, _ := newEstimator(map[string]model.OrderBook{
		"forma_blueprint": {Orders: []model.SellOrder{
			sellOrder("o1", 15, 5, model.StatusOnline, 10),
		}},
	})

	resp := svc.Estimate(context.Background(), &model.EstimateRequest{
		Items: []model.EstimateItemInput{{Slug: "forma_blueprint", Quantity: 3}},
	})

	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(resp.Items))
	}
	it := resp.Items[0]
	if it.EstimatedUnitPrice == nil || *it.EstimatedUnitPrice != 15 {
		t.Fatalf("unexpected unit price: %+v", it.EstimatedUnitPrice)
	}
	if it.Subtotal == nil || *it.Subtotal != 45 {
		t.Fatalf("unexpected subtotal: %+v", it.Subtotal)
	}
	if it.Seller == nil || it.Seller.OrderID != "o1" {
		t.Fatalf("unexpected seller: %+v", it.Seller)
	}
	if resp.Total != 45 {
		t.Fatalf("expected total 45, got %v", resp.Total)
	}
	if len(resp.Unavailable) != 0 {
		t.Fatalf("expected no unavailable entries, got %+v", resp.Unavailable)
	}
	if resp.Currency != "platinum" || resp.Platform != "pc" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestEstimateLineOrderMatchesRequest(t *testing.T) {
	svc, f := newEstimator(map[string]model.OrderBook{
		"a": {Orders: []model.SellOrder{sellOrder("oa", 10, 1, model.StatusOnline, 0)}},
		"b": {NotFound: true},
		"c": {Orders: []model.SellOrder{sellOrder("oc", 20, 1, model.StatusOnline, 0)}},
	})

	resp := svc.Estimate(context.Background(), &model.EstimateRequest{
		Items: []model.EstimateItemInput{
			{Slug: "a", Quantity: 1}, {Slug: "b", Quantity: 2}, {Slug: "c", Quantity: 1},
		},
	})

	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(resp.Items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if resp.Items[i].Slug != want {
			t.Fatalf("line %d: expected %q, got %q", i, want, resp.Items[i].Slug)
		}
	}
	// Upstream calls happen one at a time, in request order
	if len(f.calls) != 3 || f.calls[0] != "a" || f.calls[1] != "b" || f.calls[2] != "c" {
		t.Fatalf("unexpected fetch order: %v", f.calls)
	}
}

func TestEstimateClassifiesUnavailability(t *testing.T) {
	svc, _ := newEstimator(map[string]model.OrderBook{
		"missing": {NotFound: true},
		"empty":   {Orders: []model.SellOrder{}},
		"broken":  {Failed: true},
	})

	resp := svc.Estimate(context.Background(), &model.EstimateRequest{
		Items: []model.EstimateItemInput{
			{Slug: "missing", Quantity: 1},
			{Slug: "empty", Quantity: 1},
			{Slug: "broken", Quantity: 1},
		},
	})

	if resp.Total != 0 {
		t.Fatalf("expected total 0, got %v", resp.Total)
	}
	want := map[string]model.UnavailableReason{
		"missing": model.ReasonNotFound,
		"empty":   model.ReasonNoSellOrders,
		"broken":  model.ReasonUpstream,
	}
	if len(resp.Unavailable) != 3 {
		t.Fatalf("expected 3 unavailable entries, got %+v", resp.Unavailable)
	}
	for _, u := range resp.Unavailable {
		if want[u.Slug] != u.Reason {
			t.Fatalf("slug %q: expected reason %q, got %q", u.Slug, want[u.Slug], u.Reason)
		}
	}
	// Price fields all null on every line
	for _, it := range resp.Items {
		if it.EstimatedUnitPrice != nil || it.Subtotal != nil || it.Seller != nil {
			t.Fatalf("expected null price fields for %q: %+v", it.Slug, it)
		}
	}
}

func TestEstimatePriceFieldsAllOrNothing(t *testing.T) {
	svc, _ := newEstimator(map[string]model.OrderBook{
		"ok":  {Orders: []model.SellOrder{sellOrder("o1", 5, 1, model.StatusInGame, 0)}},
		"bad": {Failed: true},
	})

	resp := svc.Estimate(context.Background(), &model.EstimateRequest{
		Items: []model.EstimateItemInput{{Slug: "ok", Quantity: 2}, {Slug: "bad", Quantity: 2}},
	})

	ok, bad := resp.Items[0], resp.Items[1]
	if ok.EstimatedUnitPrice == nil || ok.Subtotal == nil || ok.Seller == nil {
		t.Fatalf("populated line must have all fields set: %+v", ok)
	}
	if bad.EstimatedUnitPrice != nil || bad.Subtotal != nil || bad.Seller != nil {
		t.Fatalf("unavailable line must have all fields null: %+v", bad)
	}
	if resp.Total != *ok.Subtotal {
		t.Fatalf("total must sum only non-null subtotals: %v vs %v", resp.Total, *ok.Subtotal)
	}
}

func TestEstimateCrossplayDefaultsTrue(t *testing.T) {
	svc, _ := newEstimator(map[string]model.OrderBook{"x": {NotFound: true}})

	resp := svc.Estimate(context.Background(), &model.EstimateRequest{
		Items: []model.EstimateItemInput{{Slug: "x", Quantity: 1}},
	})
	if !resp.Crossplay {
		t.Fatalf("crossplay should default to true")
	}

	off := false
	resp = svc.Estimate(context.Background(), &model.EstimateRequest{
		Items:     []model.EstimateItemInput{{Slug: "x", Quantity: 1}},
		Crossplay: &off,
	})
	if resp.Crossplay {
		t.Fatalf("crossplay false should pass through")
	}
}

func TestEstimateGeneratedAt(t *testing.T) {
	svc, _ := newEstimator(map[string]model.OrderBook{"x": {NotFound: true}})
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	resp := svc.Estimate(context.Background(), &model.EstimateRequest{
		Items: []model.EstimateItemInput{{Slug: "x", Quantity: 1}},
	})
	if !resp.GeneratedAt.Equal(fixed) {
		t.Fatalf("expected generatedAt %v, got %v", fixed, resp.GeneratedAt)
	}
}

func TestFilterSellOrders(t *testing.T) {
	hidden := false
	shown := true
	orders := []model.SellOrder{
		sellOrder("good", 10, 2, model.StatusOnline, 0),
		{ID: "buy", Type: "buy", Platinum: 5, Quantity: 1, User: model.OrderUser{IngameName: "b"}},
		{ID: "zero_price", Type: "sell", Platinum: 0, Quantity: 1, User: model.OrderUser{IngameName: "z"}},
		{ID: "neg_qty", Type: "sell", Platinum: 5, Quantity: -1, User: model.OrderUser{IngameName: "n"}},
		{ID: "no_name", Type: "sell", Platinum: 5, Quantity: 1},
		{ID: "hidden", Type: "sell", Platinum: 5, Quantity: 1, Visible: &hidden, User: model.OrderUser{IngameName: "h"}},
		{ID: "visible", Type: "sell", Platinum: 5, Quantity: 1, Visible: &shown, User: model.OrderUser{IngameName: "v"}},
	}

	got := filterSellOrders(orders)
	if len(got) != 2 {
		t.Fatalf("expected 2 valid orders, got %d: %+v", len(got), got)
	}
	if got[0].ID != "good" || got[1].ID != "visible" {
		t.Fatalf("unexpected survivors: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestPickBestSellerStatusBeatsPrice(t *testing.T) {
	best, ok := pickBestSeller([]model.SellOrder{
		sellOrder("cheap_offline", 5, 1, model.StatusOffline, 100),
		sellOrder("pricier_ingame", 8, 1, model.StatusInGame, 0),
	})
	if !ok || best.ID != "pricier_ingame" {
		t.Fatalf("status must outrank price, got %q", best.ID)
	}
}

func TestPickBestSellerPriceThenReputationThenQuantity(t *testing.T) {
	best, _ := pickBestSeller([]model.SellOrder{
		sellOrder("exp", 10, 1, model.StatusOnline, 0),
		sellOrder("cheap", 9, 1, model.StatusOnline, 0),
	})
	if best.ID != "cheap" {
		t.Fatalf("lower price must win, got %q", best.ID)
	}

	best, _ = pickBestSeller([]model.SellOrder{
		sellOrder("low_rep", 10, 1, model.StatusOnline, 1),
		sellOrder("high_rep", 10, 1, model.StatusOnline, 50),
	})
	if best.ID != "high_rep" {
		t.Fatalf("higher reputation must win, got %q", best.ID)
	}

	best, _ = pickBestSeller([]model.SellOrder{
		sellOrder("small", 10, 2, model.StatusOnline, 5),
		sellOrder("big", 10, 9, model.StatusOnline, 5),
	})
	if best.ID != "big" {
		t.Fatalf("higher quantity must win, got %q", best.ID)
	}
}

func TestPickBestSellerStableOnFullTie(t *testing.T) {
	best, _ := pickBestSeller([]model.SellOrder{
		sellOrder("first", 10, 3, model.StatusOnline, 5),
		sellOrder("second", 10, 3, model.StatusOnline, 5),
	})
	if best.ID != "first" {
		t.Fatalf("full tie must keep arrival order, got %q", best.ID)
	}
}

func TestPickBestSellerMissingReputationAndStatus(t *testing.T) {
	// Missing reputation counts as 0; unknown status ranks as offline.
	noRep := model.SellOrder{
		ID: "no_rep", Type: "sell", Platinum: 10, Quantity: 1,
		User: model.OrderUser{IngameName: "a", Status: model.StatusOnline},
	}
	best, _ := pickBestSeller([]model.SellOrder{
		noRep,
		sellOrder("with_rep", 10, 1, model.StatusOnline, 3),
	})
	if best.ID != "with_rep" {
		t.Fatalf("missing reputation must lose to positive, got %q", best.ID)
	}

	if r := statusRank("away"); r != 2 {
		t.Fatalf("unknown status must rank as offline, got %d", r)
	}
}
