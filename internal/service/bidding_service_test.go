package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

type biddingFixture struct {
	svc       *BiddingService
	requests  *MockBidRequestStore
	bids      *MockBidStore
	vendors   *MockVendorStore
	stats     *MockStatsStore
	costs     *MockCostStore
	publisher *MockPublisher
}

func newBiddingFixture() *biddingFixture {
	f := &biddingFixture{
		requests:  newMockBidRequestStore(),
		bids:      newMockBidStore(),
		vendors:   newMockVendorStore(),
		stats:     newMockStatsStore(),
		costs:     &MockCostStore{},
		publisher: &MockPublisher{},
	}
	f.svc = NewBiddingService(f.requests, f.bids, f.vendors, f.stats, f.costs, f.publisher, zap.NewNop())
	return f
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(nil)
	require.Equal(t, 0, stats.BidCount)
	require.Nil(t, stats.LowestBid)

	stats = ComputeStats([]float64{300, 150, 225})
	require.Equal(t, 3, stats.BidCount)
	require.NotNil(t, stats.LowestBid)
	require.Equal(t, 150.0, *stats.LowestBid)
}

func TestListOpenRequestsWithStats(t *testing.T) {
	f := newBiddingFixture()

	f.requests.open = []model.BidRequest{
		{ID: "r2", Title: "Steel beams", Status: model.BidRequestStatusOpen},
		{ID: "r1", Title: "Cement bags", Status: model.BidRequestStatusOpen},
	}
	f.bids.prices["r1"] = []float64{500, 480, 520}

	result, err := f.svc.ListOpenRequestsWithStats(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Order follows the store's newest-first ordering.
	require.Equal(t, "r2", result[0].ID)
	require.Equal(t, 0, result[0].BidCount)
	require.Nil(t, result[0].LowestBid)

	require.Equal(t, "r1", result[1].ID)
	require.Equal(t, 3, result[1].BidCount)
	require.Equal(t, 480.0, *result[1].LowestBid)

	// Stats were cached for both requests.
	require.Equal(t, 2, f.stats.sets)
}

func TestListOpenRequestsWithStatsUsesCache(t *testing.T) {
	f := newBiddingFixture()

	f.requests.open = []model.BidRequest{{ID: "r1", Status: model.BidRequestStatusOpen}}
	lowest := 99.0
	f.stats.entries["r1"] = model.BidRequestStats{BidCount: 7, LowestBid: &lowest}
	// The batch price fetch would disagree. Cache wins.
	f.bids.prices["r1"] = []float64{500}

	result, err := f.svc.ListOpenRequestsWithStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, result[0].BidCount)
	require.Equal(t, 99.0, *result[0].LowestBid)
	require.Zero(t, f.stats.sets)
}

func validBidRequestCreate() model.BidRequestCreate {
	return model.BidRequestCreate{
		Title:            "T",
		Description:      "D",
		Category:         "cement",
		Quantity:         "10",
		Unit:             "bags",
		DeliveryLocation: "Site A",
	}
}

func TestCreateBidRequestRequiresAuth(t *testing.T) {
	f := newBiddingFixture()

	create := validBidRequestCreate()
	_, err := f.svc.CreateBidRequest(context.Background(), "", &create)
	require.ErrorIs(t, err, ErrAuthRequired)
	require.Empty(t, f.requests.created)
}

func TestCreateBidRequestValidation(t *testing.T) {
	f := newBiddingFixture()

	cases := []struct {
		name   string
		mutate func(c *model.BidRequestCreate)
		field  string
	}{
		{"missing title", func(c *model.BidRequestCreate) { c.Title = "" }, "title"},
		{"missing description", func(c *model.BidRequestCreate) { c.Description = "" }, "description"},
		{"missing category", func(c *model.BidRequestCreate) { c.Category = "" }, "category"},
		{"unknown category", func(c *model.BidRequestCreate) { c.Category = "lumber" }, "category"},
		{"missing unit", func(c *model.BidRequestCreate) { c.Unit = "" }, "unit"},
		{"missing delivery location", func(c *model.BidRequestCreate) { c.DeliveryLocation = "" }, "delivery_location"},
		{"bad quantity", func(c *model.BidRequestCreate) { c.Quantity = "abc" }, "quantity"},
		{"negative quantity", func(c *model.BidRequestCreate) { c.Quantity = "-5" }, "quantity"},
		{"bad budget", func(c *model.BidRequestCreate) { c.Budget = "x" }, "budget"},
		{"negative budget", func(c *model.BidRequestCreate) { c.Budget = "-100" }, "budget"},
		{"bad deadline", func(c *model.BidRequestCreate) { c.DeliveryDeadline = "not-a-date" }, "delivery_deadline"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			create := validBidRequestCreate()
			tc.mutate(&create)
			_, err := f.svc.CreateBidRequest(context.Background(), "u1", &create)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}

	// No request reached the store.
	require.Empty(t, f.requests.created)
}

func TestCreateBidRequestSuccess(t *testing.T) {
	f := newBiddingFixture()

	created, err := f.svc.CreateBidRequest(context.Background(), "u1", &model.BidRequestCreate{
		Title:            "500 Bags of Cement",
		Description:      "OPC 53 grade",
		Category:         "cement",
		Quantity:         "500",
		Unit:             "bags",
		Budget:           "4500",
		DeliveryLocation: "Riverside site",
		DeliveryDeadline: "2026-09-15",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "u1", created.UserID)
	require.Equal(t, model.BidRequestStatusOpen, created.Status)
	require.Equal(t, 500.0, created.Quantity)
	require.Equal(t, 4500.0, *created.Budget)
	require.Equal(t, "Riverside site", created.DeliveryLocation)
	require.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *created.DeliveryDeadline)
	require.Len(t, f.requests.created, 1)
}

func TestCreateBidRequestZeroBudget(t *testing.T) {
	f := newBiddingFixture()

	create := validBidRequestCreate()
	create.Budget = "0"
	created, err := f.svc.CreateBidRequest(context.Background(), "u1", &create)
	require.NoError(t, err)
	require.Equal(t, 0.0, *created.Budget)
}

func TestSubmitBidHappyPath(t *testing.T) {
	f := newBiddingFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Status: model.BidRequestStatusOpen}
	vendorUser := "u-vendor"
	f.vendors.vendors["v1"] = &model.VendorProfile{ID: "v1", UserID: &vendorUser, CompanyName: "Acme"}

	bid, err := f.svc.SubmitBid(context.Background(), "u-vendor", &model.BidCreate{
		BidRequestID:     "r1",
		VendorID:         "v1",
		Price:            480,
		DeliveryTimeDays: 7,
		Notes:            "Bulk discount applied",
	})
	require.NoError(t, err)
	require.Equal(t, model.BidStatusSubmitted, bid.Status)
	require.Len(t, f.bids.created, 1)

	// The cached aggregate was dropped and the row change published.
	require.Equal(t, []string{"r1"}, f.stats.invalidated)
	require.Len(t, f.publisher.published, 1)
	require.Equal(t, events.TypeInsert, f.publisher.published[0].Type)
	require.Equal(t, events.TableBids, f.publisher.published[0].Table)
}

func TestSubmitBidRejections(t *testing.T) {
	f := newBiddingFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Status: model.BidRequestStatusOpen}
	f.requests.requests["r2"] = &model.BidRequest{ID: "r2", UserID: "buyer", Status: model.BidRequestStatusAwarded}
	vendorUser := "u-vendor"
	f.vendors.vendors["v1"] = &model.VendorProfile{ID: "v1", UserID: &vendorUser}

	// Unknown request.
	_, err := f.svc.SubmitBid(context.Background(), "u-vendor", &model.BidCreate{
		BidRequestID: "missing", VendorID: "v1", Price: 10, DeliveryTimeDays: 1,
	})
	require.ErrorIs(t, err, ErrNotFound)

	// Closed request.
	_, err = f.svc.SubmitBid(context.Background(), "u-vendor", &model.BidCreate{
		BidRequestID: "r2", VendorID: "v1", Price: 10, DeliveryTimeDays: 1,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Vendor owned by someone else.
	_, err = f.svc.SubmitBid(context.Background(), "other-user", &model.BidCreate{
		BidRequestID: "r1", VendorID: "v1", Price: 10, DeliveryTimeDays: 1,
	})
	require.ErrorIs(t, err, ErrForbidden)

	// Nothing was published for any rejection.
	require.Empty(t, f.publisher.published)
}

func TestAcceptBid(t *testing.T) {
	f := newBiddingFixture()

	f.requests.requests["r1"] = &model.BidRequest{ID: "r1", UserID: "buyer", Status: model.BidRequestStatusOpen}
	f.bids.bids["b1"] = &model.Bid{ID: "b1", BidRequestID: "r1", Status: model.BidStatusSubmitted}

	// Only the request owner may accept.
	_, err := f.svc.AcceptBid(context.Background(), "intruder", "b1")
	require.ErrorIs(t, err, ErrForbidden)

	accepted, err := f.svc.AcceptBid(context.Background(), "buyer", "b1")
	require.NoError(t, err)
	require.Equal(t, model.BidStatusAccepted, accepted.Status)
	require.Equal(t, model.BidRequestStatusAwarded, f.requests.requests["r1"].Status)
	require.Equal(t, []string{"r1"}, f.bids.rejected)
	require.Contains(t, f.stats.invalidated, "r1")

	// A request with no project books no cost.
	require.Empty(t, f.costs.costs)
}

func TestAcceptBidRecordsProjectCost(t *testing.T) {
	f := newBiddingFixture()

	projectID := "p1"
	f.requests.requests["r1"] = &model.BidRequest{
		ID:        "r1",
		UserID:    "buyer",
		ProjectID: &projectID,
		Title:     "500 Bags of Cement",
		Category:  "cement",
		Status:    model.BidRequestStatusOpen,
	}
	f.bids.bids["b1"] = &model.Bid{ID: "b1", BidRequestID: "r1", Price: 4200, Status: model.BidStatusSubmitted}

	_, err := f.svc.AcceptBid(context.Background(), "buyer", "b1")
	require.NoError(t, err)

	require.Len(t, f.costs.costs, 1)
	cost := f.costs.costs[0]
	require.Equal(t, "p1", cost.ProjectID)
	require.NotNil(t, cost.BidID)
	require.Equal(t, "b1", *cost.BidID)
	require.Equal(t, "cement", cost.Category)
	require.Equal(t, 4200.0, cost.Amount)
	require.Equal(t, "buyer", cost.CreatedBy)
	require.Contains(t, cost.Description, "500 Bags of Cement")
}
