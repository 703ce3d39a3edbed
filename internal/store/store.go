// internal/store/store.go
package store

import (
	"context"
	"errors"

	"coffee-scm-api-server/internal/models"
)

// Sentinel errors returned by Storage implementations. Handlers map these
// to HTTP status codes.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate unique key")
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrBidTooLow         = errors.New("bid does not exceed the current price")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	ActiveFarmers  int64   `json:"activeFarmers"`
	CoffeeLots     int64   `json:"coffeeLots"`
	TotalInventory float64 `json:"totalInventory"` // summed lot quantity, kg
	ActiveAuctions int64   `json:"activeAuctions"`
}

// Storage is the persistence boundary for the whole API. Two
// implementations exist: Mongo (production) and Memory (no database
// configured, and tests). Create methods assign the record's ID and
// CreatedAt in place.
type Storage interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUsersByRole(ctx context.Context, role string) ([]models.User, error)

	// Cooperatives
	CreateCooperative(ctx context.Context, coop *models.Cooperative) error
	GetCooperative(ctx context.Context, id string) (*models.Cooperative, error)
	ListCooperatives(ctx context.Context) ([]models.Cooperative, error)

	// Farmers
	CreateFarmer(ctx context.Context, farmer *models.Farmer) error
	ListFarmers(ctx context.Context) ([]models.Farmer, error)
	ListFarmersByCooperative(ctx context.Context, cooperativeID string) ([]models.Farmer, error)

	// Coffee lots
	CreateCoffeeLot(ctx context.Context, lot *models.CoffeeLot) error
	GetCoffeeLotByLotID(ctx context.Context, lotID string) (*models.CoffeeLot, error)
	ListCoffeeLots(ctx context.Context) ([]models.CoffeeLot, error)
	ListCoffeeLotsByFarmer(ctx context.Context, farmerID string) ([]models.CoffeeLot, error)
	ListCoffeeLotsByStatus(ctx context.Context, status string) ([]models.CoffeeLot, error)
	// UpdateCoffeeLotStatus enforces the forward-only transition table and
	// returns ErrInvalidTransition for backward or same-status moves.
	UpdateCoffeeLotStatus(ctx context.Context, lotID, status string) (*models.CoffeeLot, error)

	// Inventory
	UpsertInventory(ctx context.Context, record *models.InventoryRecord) error
	GetInventory(ctx context.Context, facilityType, facilityID string) ([]models.InventoryRecord, error)

	// Auctions and bids
	CreateAuction(ctx context.Context, auction *models.Auction) error
	GetAuction(ctx context.Context, id string) (*models.Auction, error)
	ListActiveAuctions(ctx context.Context) ([]models.Auction, error)
	// PlaceBid is the one serialized operation in the system: the
	// exceeds-current-price check and the price update happen as a single
	// unit per auction. Returns ErrNotFound, ErrAuctionNotActive or
	// ErrBidTooLow.
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (*models.Bid, error)
	// CloseAuction assigns the authoritative winner: highest bid amount,
	// earliest bid time among equals.
	CloseAuction(ctx context.Context, id string) (*models.Auction, error)
	CancelAuction(ctx context.Context, id string) (*models.Auction, error)
	ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error)

	// Payments
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListPaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) (*models.Payment, error)

	// SMS notifications
	CreateSmsNotification(ctx context.Context, notification *models.SmsNotification) error
	GetSmsNotification(ctx context.Context, id string) (*models.SmsNotification, error)
	// UpdateSmsStatus stamps SentAt when the new status is sent and
	// records lastError otherwise.
	UpdateSmsStatus(ctx context.Context, id, status, lastError string) (*models.SmsNotification, error)
	ListPendingSms(ctx context.Context) ([]models.SmsNotification, error)

	// Dashboard
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
