package service

import (
	"context"
	"sync"

	"github.com/yourorg/buildbid/internal/email"
	"github.com/yourorg/buildbid/internal/events"
	"github.com/yourorg/buildbid/internal/model"
)

// MockBidRequestStore implements BidRequestStore
type MockBidRequestStore struct {
	requests   map[string]*model.BidRequest
	open       []model.BidRequest
	created    []*model.BidRequest
	CreateFunc func(ctx context.Context, req *model.BidRequest) error
}

func newMockBidRequestStore() *MockBidRequestStore {
	return &MockBidRequestStore{requests: map[string]*model.BidRequest{}}
}

func (m *MockBidRequestStore) Create(ctx context.Context, req *model.BidRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	m.created = append(m.created, req)
	m.requests[req.ID] = req
	return nil
}

func (m *MockBidRequestStore) GetByID(ctx context.Context, id string) (*model.BidRequest, error) {
	return m.requests[id], nil
}

func (m *MockBidRequestStore) ListOpen(ctx context.Context) ([]model.BidRequest, error) {
	return m.open, nil
}

func (m *MockBidRequestStore) ListByUser(ctx context.Context, userID string) ([]model.BidRequest, error) {
	var out []model.BidRequest
	for _, req := range m.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MockBidRequestStore) UpdateStatus(ctx context.Context, id, status string) error {
	if req, ok := m.requests[id]; ok {
		req.Status = status
	}
	return nil
}

// MockBidStore implements BidStore
type MockBidStore struct {
	bids     map[string]*model.Bid
	byReq    map[string][]model.BidWithVendor
	prices   map[string][]float64
	created  []*model.Bid
	rejected []string
}

func newMockBidStore() *MockBidStore {
	return &MockBidStore{
		bids:   map[string]*model.Bid{},
		byReq:  map[string][]model.BidWithVendor{},
		prices: map[string][]float64{},
	}
}

func (m *MockBidStore) Create(ctx context.Context, bid *model.Bid) error {
	m.created = append(m.created, bid)
	m.bids[bid.ID] = bid
	return nil
}

func (m *MockBidStore) GetByID(ctx context.Context, id string) (*model.Bid, error) {
	return m.bids[id], nil
}

func (m *MockBidStore) ListForRequest(ctx context.Context, requestID string) ([]model.BidWithVendor, error) {
	return m.byReq[requestID], nil
}

func (m *MockBidStore) PricesByRequests(ctx context.Context, requestIDs []string) (map[string][]float64, error) {
	out := map[string][]float64{}
	for _, id := range requestIDs {
		if prices, ok := m.prices[id]; ok {
			out[id] = prices
		}
	}
	return out, nil
}

func (m *MockBidStore) UpdateStatus(ctx context.Context, id, status string) error {
	if bid, ok := m.bids[id]; ok {
		bid.Status = status
	}
	return nil
}

func (m *MockBidStore) RejectOthers(ctx context.Context, requestID, acceptedBidID string) error {
	m.rejected = append(m.rejected, requestID)
	return nil
}

// MockVendorStore implements VendorStore
type MockVendorStore struct {
	vendors map[string]*model.VendorProfile
}

func newMockVendorStore() *MockVendorStore {
	return &MockVendorStore{vendors: map[string]*model.VendorProfile{}}
}

func (m *MockVendorStore) GetByID(ctx context.Context, id string) (*model.VendorProfile, error) {
	return m.vendors[id], nil
}

func (m *MockVendorStore) GetByUser(ctx context.Context, userID string) (*model.VendorProfile, error) {
	for _, v := range m.vendors {
		if v.UserID != nil && *v.UserID == userID {
			return v, nil
		}
	}
	return nil, nil
}

// MockStatsStore implements StatsStore with an in-memory map
type MockStatsStore struct {
	mu          sync.Mutex
	entries     map[string]model.BidRequestStats
	invalidated []string
	sets        int
	gets        int
}

func newMockStatsStore() *MockStatsStore {
	return &MockStatsStore{entries: map[string]model.BidRequestStats{}}
}

func (m *MockStatsStore) Get(ctx context.Context, requestID string) (*model.BidRequestStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if stats, ok := m.entries[requestID]; ok {
		return &stats, nil
	}
	return nil, nil
}

func (m *MockStatsStore) Set(ctx context.Context, requestID string, stats model.BidRequestStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[requestID] = stats
}

func (m *MockStatsStore) Invalidate(ctx context.Context, requestID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, requestID)
	delete(m.entries, requestID)
}

// MockPublisher implements events.Publisher and records published events
type MockPublisher struct {
	published []events.ChangeEvent
}

func (m *MockPublisher) PublishChange(ctx context.Context, event events.ChangeEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// MockCostStore implements CostStore and records added cost entries
type MockCostStore struct {
	costs []*model.ProjectCost
}

func (m *MockCostStore) AddCost(ctx context.Context, cost *model.ProjectCost) error {
	m.costs = append(m.costs, cost)
	return nil
}

// MockProjectGetter implements ProjectGetter
type MockProjectGetter struct {
	projects map[string]*model.Project
}

func (m *MockProjectGetter) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return m.projects[id], nil
}

// MockUserGetter implements UserGetter
type MockUserGetter struct {
	users map[string]*model.User
}

func (m *MockUserGetter) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

// MockPreferenceStore implements PreferenceStore
type MockPreferenceStore struct {
	prefs           map[string]*model.UserPreferences
	defaultsCreated []string
}

func newMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{prefs: map[string]*model.UserPreferences{}}
}

func (m *MockPreferenceStore) GetByUser(ctx context.Context, userID string) (*model.UserPreferences, error) {
	return m.prefs[userID], nil
}

func (m *MockPreferenceStore) CreateDefaults(ctx context.Context, userID string) (*model.UserPreferences, error) {
	m.defaultsCreated = append(m.defaultsCreated, userID)
	defaults := model.DefaultPreferences(userID)
	m.prefs[userID] = &defaults
	return &defaults, nil
}

// MockSender implements email.Sender and records sent messages
type MockSender struct {
	sent    []sentEmail
	SendErr error
}

type sentEmail struct {
	to  string
	msg email.Message
}

func (m *MockSender) Send(ctx context.Context, to string, msg email.Message) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.sent = append(m.sent, sentEmail{to: to, msg: msg})
	return nil
}
