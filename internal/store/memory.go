// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"coffee-scm-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Storage used when no Mongo URI is configured
// and by the test suite. A single mutex serializes every operation, which
// also gives PlaceBid its required atomicity.
type Memory struct {
	mu           sync.Mutex
	users        []models.User
	cooperatives []models.Cooperative
	farmers      []models.Farmer
	lots         []models.CoffeeLot
	inventory    []models.InventoryRecord
	auctions     []models.Auction
	bids         []models.Bid
	payments     []models.Payment
	sms          []models.SmsNotification
}

func NewMemory() *Memory {
	return &Memory{}
}

// --- Users ---

func (s *Memory) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	s.users = append(s.users, *user)
	return nil
}

func (s *Memory) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := []models.User{}
	for _, u := range s.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	return users, nil
}

// --- Cooperatives ---

func (s *Memory) CreateCooperative(ctx context.Context, coop *models.Cooperative) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coop.ID = primitive.NewObjectID()
	coop.CreatedAt = time.Now()
	s.cooperatives = append(s.cooperatives, *coop)
	return nil
}

func (s *Memory) GetCooperative(ctx context.Context, id string) (*models.Cooperative, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cooperatives {
		if c.ID.Hex() == id {
			coop := c
			return &coop, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) ListCooperatives(ctx context.Context) ([]models.Cooperative, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coops := []models.Cooperative{}
	for i := len(s.cooperatives) - 1; i >= 0; i-- {
		coops = append(coops, s.cooperatives[i])
	}
	return coops, nil
}

// --- Farmers ---

func (s *Memory) CreateFarmer(ctx context.Context, farmer *models.Farmer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.farmers {
		if f.FarmID == farmer.FarmID {
			return ErrDuplicate
		}
	}
	farmer.ID = primitive.NewObjectID()
	farmer.CreatedAt = time.Now()
	s.farmers = append(s.farmers, *farmer)
	return nil
}

func (s *Memory) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterFarmers(func(models.Farmer) bool { return true }), nil
}

func (s *Memory) ListFarmersByCooperative(ctx context.Context, cooperativeID string) ([]models.Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterFarmers(func(f models.Farmer) bool { return f.CooperativeID == cooperativeID }), nil
}

func (s *Memory) filterFarmers(keep func(models.Farmer) bool) []models.Farmer {
	farmers := []models.Farmer{}
	for i := len(s.farmers) - 1; i >= 0; i-- {
		if keep(s.farmers[i]) {
			farmers = append(farmers, s.farmers[i])
		}
	}
	return farmers
}

// --- Coffee lots ---

func (s *Memory) CreateCoffeeLot(ctx context.Context, lot *models.CoffeeLot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lots {
		if l.LotID == lot.LotID {
			return ErrDuplicate
		}
	}
	lot.ID = primitive.NewObjectID()
	lot.CreatedAt = time.Now()
	s.lots = append(s.lots, *lot)
	return nil
}

func (s *Memory) GetCoffeeLotByLotID(ctx context.Context, lotID string) (*models.CoffeeLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lots {
		if l.LotID == lotID {
			lot := l
			return &lot, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) ListCoffeeLots(ctx context.Context) ([]models.CoffeeLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLots(func(models.CoffeeLot) bool { return true }), nil
}

func (s *Memory) ListCoffeeLotsByFarmer(ctx context.Context, farmerID string) ([]models.CoffeeLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLots(func(l models.CoffeeLot) bool { return l.FarmerID == farmerID }), nil
}

func (s *Memory) ListCoffeeLotsByStatus(ctx context.Context, status string) ([]models.CoffeeLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterLots(func(l models.CoffeeLot) bool { return l.Status == status }), nil
}

func (s *Memory) filterLots(keep func(models.CoffeeLot) bool) []models.CoffeeLot {
	lots := []models.CoffeeLot{}
	for i := len(s.lots) - 1; i >= 0; i-- {
		if keep(s.lots[i]) {
			lots = append(lots, s.lots[i])
		}
	}
	return lots
}

func (s *Memory) UpdateCoffeeLotStatus(ctx context.Context, lotID, status string) (*models.CoffeeLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lots {
		if s.lots[i].LotID == lotID {
			if !models.CanAdvanceLotStatus(s.lots[i].Status, status) {
				return nil, ErrInvalidTransition
			}
			s.lots[i].Status = status
			lot := s.lots[i]
			return &lot, nil
		}
	}
	return nil, ErrNotFound
}

// --- Inventory ---

func (s *Memory) UpsertInventory(ctx context.Context, record *models.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.UpdatedAt = time.Now()
	for i := range s.inventory {
		if s.inventory[i].LotID == record.LotID && s.inventory[i].FacilityID == record.FacilityID {
			record.ID = s.inventory[i].ID
			s.inventory[i] = *record
			return nil
		}
	}
	record.ID = primitive.NewObjectID()
	s.inventory = append(s.inventory, *record)
	return nil
}

func (s *Memory) GetInventory(ctx context.Context, facilityType, facilityID string) ([]models.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := []models.InventoryRecord{}
	for _, r := range s.inventory {
		if r.FacilityType == facilityType && r.FacilityID == facilityID {
			records = append(records, r)
		}
	}
	return records, nil
}

// --- Auctions and bids ---

func (s *Memory) CreateAuction(ctx context.Context, auction *models.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction.ID = primitive.NewObjectID()
	auction.CreatedAt = time.Now()
	s.auctions = append(s.auctions, *auction)
	return nil
}

func (s *Memory) GetAuction(ctx context.Context, id string) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction := s.findAuction(id)
	if auction == nil {
		return nil, ErrNotFound
	}
	copied := *auction
	return &copied, nil
}

func (s *Memory) findAuction(id string) *models.Auction {
	for i := range s.auctions {
		if s.auctions[i].ID.Hex() == id {
			return &s.auctions[i]
		}
	}
	return nil
}

func (s *Memory) ListActiveAuctions(ctx context.Context) ([]models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auctions := []models.Auction{}
	for i := len(s.auctions) - 1; i >= 0; i-- {
		if s.auctions[i].Status == models.AuctionStatusActive {
			auctions = append(auctions, s.auctions[i])
		}
	}
	return auctions, nil
}

func (s *Memory) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction := s.findAuction(auctionID)
	if auction == nil {
		return nil, ErrNotFound
	}
	if auction.Status != models.AuctionStatusActive {
		return nil, ErrAuctionNotActive
	}
	floor := auction.StartingPrice
	if auction.CurrentPrice != nil {
		floor = *auction.CurrentPrice
	}
	if amount <= floor {
		return nil, ErrBidTooLow
	}

	price := amount
	auction.CurrentPrice = &price
	auction.LeadingBidderID = bidderID

	bid := models.Bid{
		ID:        primitive.NewObjectID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		BidTime:   time.Now(),
	}
	s.bids = append(s.bids, bid)
	return &bid, nil
}

func (s *Memory) CloseAuction(ctx context.Context, id string) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction := s.findAuction(id)
	if auction == nil {
		return nil, ErrNotFound
	}
	if auction.Status != models.AuctionStatusActive {
		return nil, ErrAuctionNotActive
	}

	// Highest amount wins; the earliest bid wins a tie. Insertion order
	// breaks exact-timestamp ties.
	var winner *models.Bid
	for i := range s.bids {
		b := &s.bids[i]
		if b.AuctionID != id {
			continue
		}
		if winner == nil || b.Amount > winner.Amount ||
			(b.Amount == winner.Amount && b.BidTime.Before(winner.BidTime)) {
			winner = b
		}
	}
	if winner != nil {
		auction.WinnerID = winner.BidderID
	}
	now := time.Now()
	auction.Status = models.AuctionStatusClosed
	auction.EndTime = &now
	copied := *auction
	return &copied, nil
}

func (s *Memory) CancelAuction(ctx context.Context, id string) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction := s.findAuction(id)
	if auction == nil {
		return nil, ErrNotFound
	}
	if auction.Status != models.AuctionStatusActive {
		return nil, ErrAuctionNotActive
	}
	now := time.Now()
	auction.Status = models.AuctionStatusCancelled
	auction.EndTime = &now
	copied := *auction
	return &copied, nil
}

func (s *Memory) ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bids := []models.Bid{}
	for _, b := range s.bids {
		if b.AuctionID == auctionID {
			bids = append(bids, b)
		}
	}
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Amount != bids[j].Amount {
			return bids[i].Amount > bids[j].Amount
		}
		return bids[i].BidTime.Before(bids[j].BidTime)
	})
	return bids, nil
}

// --- Payments ---

func (s *Memory) CreatePayment(ctx context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.TransactionID == payment.TransactionID {
			return ErrDuplicate
		}
	}
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	s.payments = append(s.payments, *payment)
	return nil
}

func (s *Memory) ListPaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payments := []models.Payment{}
	for i := len(s.payments) - 1; i >= 0; i-- {
		p := s.payments[i]
		if p.PayerID == userID || p.PayeeID == userID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (s *Memory) UpdatePaymentStatus(ctx context.Context, id, status string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID.Hex() == id {
			if !models.CanTransitionPayment(s.payments[i].Status, status) {
				return nil, ErrInvalidTransition
			}
			s.payments[i].Status = status
			if models.PaymentTerminal(status) {
				now := time.Now()
				s.payments[i].ProcessedAt = &now
			}
			payment := s.payments[i]
			return &payment, nil
		}
	}
	return nil, ErrNotFound
}

// --- SMS notifications ---

func (s *Memory) CreateSmsNotification(ctx context.Context, notification *models.SmsNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	s.sms = append(s.sms, *notification)
	return nil
}

func (s *Memory) GetSmsNotification(ctx context.Context, id string) (*models.SmsNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.sms {
		if n.ID.Hex() == id {
			notification := n
			return &notification, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UpdateSmsStatus(ctx context.Context, id, status, lastError string) (*models.SmsNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sms {
		if s.sms[i].ID.Hex() == id {
			s.sms[i].Status = status
			s.sms[i].LastError = lastError
			if status == models.SmsStatusSent {
				now := time.Now()
				s.sms[i].SentAt = &now
			}
			notification := s.sms[i]
			return &notification, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) ListPendingSms(ctx context.Context) ([]models.SmsNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := []models.SmsNotification{}
	for _, n := range s.sms {
		if n.Status == models.SmsStatusPending {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

// --- Dashboard ---

func (s *Memory) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var totalInventory float64
	for _, l := range s.lots {
		totalInventory += l.Quantity
	}
	var activeAuctions int64
	for _, a := range s.auctions {
		if a.Status == models.AuctionStatusActive {
			activeAuctions++
		}
	}
	return &DashboardStats{
		ActiveFarmers:  int64(len(s.farmers)),
		CoffeeLots:     int64(len(s.lots)),
		TotalInventory: totalInventory,
		ActiveAuctions: activeAuctions,
	}, nil
}
