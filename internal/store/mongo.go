// internal/store/mongo.go
package store

import (
	"context"
	"time"

	"coffee-scm-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Storage on top of a MongoDB database.
type Mongo struct {
	DB *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{DB: db}
}

// --- Users ---

func (s *Mongo) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	result, err := s.DB.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	cursor, err := s.DB.Collection("users").Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// --- Cooperatives ---

func (s *Mongo) CreateCooperative(ctx context.Context, coop *models.Cooperative) error {
	coop.CreatedAt = time.Now()
	result, err := s.DB.Collection("cooperatives").InsertOne(ctx, coop)
	if err != nil {
		return err
	}
	coop.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) GetCooperative(ctx context.Context, id string) (*models.Cooperative, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var coop models.Cooperative
	err = s.DB.Collection("cooperatives").FindOne(ctx, bson.M{"_id": oid}).Decode(&coop)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coop, nil
}

func (s *Mongo) ListCooperatives(ctx context.Context) ([]models.Cooperative, error) {
	return s.findCooperatives(ctx, bson.M{})
}

func (s *Mongo) findCooperatives(ctx context.Context, filter bson.M) ([]models.Cooperative, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("cooperatives").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coops []models.Cooperative
	if err = cursor.All(ctx, &coops); err != nil {
		return nil, err
	}
	if coops == nil {
		coops = []models.Cooperative{}
	}
	return coops, nil
}

// --- Farmers ---

func (s *Mongo) CreateFarmer(ctx context.Context, farmer *models.Farmer) error {
	farmer.CreatedAt = time.Now()
	result, err := s.DB.Collection("farmers").InsertOne(ctx, farmer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	farmer.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	return s.findFarmers(ctx, bson.M{})
}

func (s *Mongo) ListFarmersByCooperative(ctx context.Context, cooperativeID string) ([]models.Farmer, error) {
	return s.findFarmers(ctx, bson.M{"cooperativeID": cooperativeID})
}

func (s *Mongo) findFarmers(ctx context.Context, filter bson.M) ([]models.Farmer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("farmers").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var farmers []models.Farmer
	if err = cursor.All(ctx, &farmers); err != nil {
		return nil, err
	}
	if farmers == nil {
		farmers = []models.Farmer{}
	}
	return farmers, nil
}

// --- Coffee lots ---

func (s *Mongo) CreateCoffeeLot(ctx context.Context, lot *models.CoffeeLot) error {
	lot.CreatedAt = time.Now()
	result, err := s.DB.Collection("coffee_lots").InsertOne(ctx, lot)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	lot.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) GetCoffeeLotByLotID(ctx context.Context, lotID string) (*models.CoffeeLot, error) {
	var lot models.CoffeeLot
	err := s.DB.Collection("coffee_lots").FindOne(ctx, bson.M{"lotID": lotID}).Decode(&lot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (s *Mongo) ListCoffeeLots(ctx context.Context) ([]models.CoffeeLot, error) {
	return s.findCoffeeLots(ctx, bson.M{})
}

func (s *Mongo) ListCoffeeLotsByFarmer(ctx context.Context, farmerID string) ([]models.CoffeeLot, error) {
	return s.findCoffeeLots(ctx, bson.M{"farmerID": farmerID})
}

func (s *Mongo) ListCoffeeLotsByStatus(ctx context.Context, status string) ([]models.CoffeeLot, error) {
	return s.findCoffeeLots(ctx, bson.M{"status": status})
}

func (s *Mongo) findCoffeeLots(ctx context.Context, filter bson.M) ([]models.CoffeeLot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("coffee_lots").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lots []models.CoffeeLot
	if err = cursor.All(ctx, &lots); err != nil {
		return nil, err
	}
	if lots == nil {
		lots = []models.CoffeeLot{}
	}
	return lots, nil
}

func (s *Mongo) UpdateCoffeeLotStatus(ctx context.Context, lotID, status string) (*models.CoffeeLot, error) {
	lot, err := s.GetCoffeeLotByLotID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if !models.CanAdvanceLotStatus(lot.Status, status) {
		return nil, ErrInvalidTransition
	}

	// Guard on the status we just read so a concurrent update cannot move
	// the lot backwards.
	result, err := s.DB.Collection("coffee_lots").UpdateOne(ctx,
		bson.M{"lotID": lotID, "status": lot.Status},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, ErrInvalidTransition
	}

	lot.Status = status
	return lot, nil
}

// --- Inventory ---

func (s *Mongo) UpsertInventory(ctx context.Context, record *models.InventoryRecord) error {
	record.UpdatedAt = time.Now()
	filter := bson.M{"lotID": record.LotID, "facilityID": record.FacilityID}
	update := bson.M{"$set": bson.M{
		"lotID":        record.LotID,
		"facilityType": record.FacilityType,
		"facilityID":   record.FacilityID,
		"quantity":     record.Quantity,
		"updatedAt":    record.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	result, err := s.DB.Collection("inventory").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return nil
}

func (s *Mongo) GetInventory(ctx context.Context, facilityType, facilityID string) ([]models.InventoryRecord, error) {
	filter := bson.M{"facilityType": facilityType, "facilityID": facilityID}
	cursor, err := s.DB.Collection("inventory").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.InventoryRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.InventoryRecord{}
	}
	return records, nil
}

// --- Auctions and bids ---

func (s *Mongo) CreateAuction(ctx context.Context, auction *models.Auction) error {
	auction.CreatedAt = time.Now()
	result, err := s.DB.Collection("auctions").InsertOne(ctx, auction)
	if err != nil {
		return err
	}
	auction.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) GetAuction(ctx context.Context, id string) (*models.Auction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var auction models.Auction
	err = s.DB.Collection("auctions").FindOne(ctx, bson.M{"_id": oid}).Decode(&auction)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

func (s *Mongo) ListActiveAuctions(ctx context.Context) ([]models.Auction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("auctions").Find(ctx, bson.M{"status": models.AuctionStatusActive}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var auctions []models.Auction
	if err = cursor.All(ctx, &auctions); err != nil {
		return nil, err
	}
	if auctions == nil {
		auctions = []models.Auction{}
	}
	return auctions, nil
}

// PlaceBid serializes the price check and the price update through a
// conditional UpdateOne: the update only applies while the auction is
// still active and the bid still exceeds the stored price. A concurrent
// higher bid makes ModifiedCount zero and the loser gets the precise
// error from a re-read.
func (s *Mongo) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (*models.Bid, error) {
	oid, err := primitive.ObjectIDFromHex(auctionID)
	if err != nil {
		return nil, ErrNotFound
	}

	auction, err := s.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
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

	filter := bson.M{
		"_id":    oid,
		"status": models.AuctionStatusActive,
		"$or": []bson.M{
			{"currentPrice": bson.M{"$lt": amount}},
			{"currentPrice": nil, "startingPrice": bson.M{"$lt": amount}},
		},
	}
	update := bson.M{"$set": bson.M{
		"currentPrice":    amount,
		"leadingBidderID": bidderID,
	}}
	result, err := s.DB.Collection("auctions").UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		// Lost the race. Re-read to report why.
		auction, err = s.GetAuction(ctx, auctionID)
		if err != nil {
			return nil, err
		}
		if auction.Status != models.AuctionStatusActive {
			return nil, ErrAuctionNotActive
		}
		return nil, ErrBidTooLow
	}

	bid := &models.Bid{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		BidTime:   time.Now(),
	}
	inserted, err := s.DB.Collection("bids").InsertOne(ctx, bid)
	if err != nil {
		return nil, err
	}
	bid.ID = inserted.InsertedID.(primitive.ObjectID)
	return bid, nil
}

func (s *Mongo) CloseAuction(ctx context.Context, id string) (*models.Auction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.GetAuction(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now()
	set := bson.M{"status": models.AuctionStatusClosed, "endTime": now}

	// Winner: highest amount, earliest bid among equal amounts.
	winnerOpts := options.FindOne().SetSort(bson.D{{Key: "amount", Value: -1}, {Key: "bidTime", Value: 1}})
	var topBid models.Bid
	err = s.DB.Collection("bids").FindOne(ctx, bson.M{"auctionID": id}, winnerOpts).Decode(&topBid)
	if err == nil {
		set["winnerID"] = topBid.BidderID
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	result, err := s.DB.Collection("auctions").UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.AuctionStatusActive},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, ErrAuctionNotActive
	}
	return s.GetAuction(ctx, id)
}

func (s *Mongo) CancelAuction(ctx context.Context, id string) (*models.Auction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := s.GetAuction(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.DB.Collection("auctions").UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.AuctionStatusActive},
		bson.M{"$set": bson.M{"status": models.AuctionStatusCancelled, "endTime": now}},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, ErrAuctionNotActive
	}
	return s.GetAuction(ctx, id)
}

func (s *Mongo) ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "amount", Value: -1}, {Key: "bidTime", Value: 1}})
	cursor, err := s.DB.Collection("bids").Find(ctx, bson.M{"auctionID": auctionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bids []models.Bid
	if err = cursor.All(ctx, &bids); err != nil {
		return nil, err
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

// --- Payments ---

func (s *Mongo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	payment.CreatedAt = time.Now()
	result, err := s.DB.Collection("payments").InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	payment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) ListPaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	filter := bson.M{"$or": []bson.M{{"payerID": userID}, {"payeeID": userID}}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.DB.Collection("payments").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

func (s *Mongo) UpdatePaymentStatus(ctx context.Context, id, status string) (*models.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var payment models.Payment
	err = s.DB.Collection("payments").FindOne(ctx, bson.M{"_id": oid}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionPayment(payment.Status, status) {
		return nil, ErrInvalidTransition
	}

	set := bson.M{"status": status}
	if models.PaymentTerminal(status) {
		now := time.Now()
		set["processedAt"] = now
		payment.ProcessedAt = &now
	}
	result, err := s.DB.Collection("payments").UpdateOne(ctx,
		bson.M{"_id": oid, "status": payment.Status},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, ErrInvalidTransition
	}
	payment.Status = status
	return &payment, nil
}

// --- SMS notifications ---

func (s *Mongo) CreateSmsNotification(ctx context.Context, notification *models.SmsNotification) error {
	notification.CreatedAt = time.Now()
	result, err := s.DB.Collection("sms_notifications").InsertOne(ctx, notification)
	if err != nil {
		return err
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Mongo) GetSmsNotification(ctx context.Context, id string) (*models.SmsNotification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var notification models.SmsNotification
	err = s.DB.Collection("sms_notifications").FindOne(ctx, bson.M{"_id": oid}).Decode(&notification)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *Mongo) UpdateSmsStatus(ctx context.Context, id, status, lastError string) (*models.SmsNotification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"status": status, "lastError": lastError}
	if status == models.SmsStatusSent {
		set["sentAt"] = time.Now()
	}
	result, err := s.DB.Collection("sms_notifications").UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetSmsNotification(ctx, id)
}

func (s *Mongo) ListPendingSms(ctx context.Context) ([]models.SmsNotification, error) {
	cursor, err := s.DB.Collection("sms_notifications").Find(ctx, bson.M{"status": models.SmsStatusPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.SmsNotification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.SmsNotification{}
	}
	return notifications, nil
}

// --- Dashboard ---

func (s *Mongo) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	farmers, err := s.DB.Collection("farmers").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	lots, err := s.DB.Collection("coffee_lots").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	auctions, err := s.DB.Collection("auctions").CountDocuments(ctx, bson.M{"status": models.AuctionStatusActive})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
	}
	cursor, err := s.DB.Collection("coffee_lots").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	var totalInventory float64
	if len(totals) > 0 {
		totalInventory = totals[0].Total
	}

	return &DashboardStats{
		ActiveFarmers:  farmers,
		CoffeeLots:     lots,
		TotalInventory: totalInventory,
		ActiveAuctions: auctions,
	}, nil
}
