package main

import (
	"fmt"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/config"
	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/logger"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	users := []struct {
		Email       string
		Password    string
		DisplayName string
	}{
		{Email: "buyer@example.com", Password: "Buyer12345", DisplayName: "Ana Popescu"},
		{Email: "seller@example.com", Password: "Seller12345", DisplayName: "Mihai Ionescu"},
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Email] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			DisplayName:  u.DisplayName,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s", u.Email)
		userIDs[u.Email] = user.ID
	}

	buyerID := userIDs["buyer@example.com"]
	sellerID := userIDs["seller@example.com"]
	if buyerID == 0 || sellerID == 0 {
		stdLog.Fatalf("Seed users missing, aborting")
	}

	var profile models.SellerProfile
	if err := models.DB.Where("user_id = ?", sellerID).First(&profile).Error; err != nil {
		profile = models.SellerProfile{
			UserID:       sellerID,
			Name:         "Mihai Ionescu",
			AddressLine1: "Strada Victoriei 12",
			City:         "Bucharest",
			PostalCode:   "010063",
			Phone:        "+40 721 000 000",
		}
		if err := models.DB.Create(&profile).Error; err != nil {
			stdLog.Printf("Failed to create seller profile: %v", err)
		} else {
			stdLog.Printf("Created seller profile for user %d", sellerID)
		}
	}

	listings := []models.Listing{
		{
			SellerID:    sellerID,
			Title:       "Vintage film camera",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(350.00)),
			Currency:    "RON",
			Status:      "active",
		},
		{
			SellerID:    sellerID,
			Title:       "Mechanical keyboard",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(420.50)),
			Currency:    "RON",
			Status:      "active",
		},
	}
	listingIDs := make([]uint, 0, len(listings))
	for i := range listings {
		var existing models.Listing
		if err := models.DB.Where("seller_id = ? AND title = ?", listings[i].SellerID, listings[i].Title).First(&existing).Error; err == nil {
			stdLog.Printf("Listing already exists: %s", listings[i].Title)
			listingIDs = append(listingIDs, existing.ID)
			continue
		}
		if err := models.DB.Create(&listings[i]).Error; err != nil {
			stdLog.Printf("Failed to create listing %s: %v", listings[i].Title, err)
			continue
		}
		stdLog.Printf("Created listing: %s", listings[i].Title)
		listingIDs = append(listingIDs, listings[i].ID)
	}
	if len(listingIDs) < 2 {
		stdLog.Fatalf("Seed listings missing, aborting")
	}

	now := time.Now()
	paidAt := now.AddDate(0, 0, -3)
	orders := []models.Order{
		{
			OrderNo:     fmt.Sprintf("ADM%s0001", now.Format("20060102")),
			BuyerID:     buyerID,
			SellerID:    sellerID,
			ListingID:   listingIDs[0],
			Status:      constants.OrderStatusShipped,
			Currency:    "RON",
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(350.00)),
			PaidAt:      &paidAt,
		},
		{
			OrderNo:     fmt.Sprintf("ADM%s0002", now.Format("20060102")),
			BuyerID:     buyerID,
			SellerID:    sellerID,
			ListingID:   listingIDs[1],
			Status:      constants.OrderStatusPaid,
			Currency:    "RON",
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(420.50)),
			PaidAt:      &paidAt,
		},
	}
	orderIDs := make([]uint, 0, len(orders))
	for i := range orders {
		var existing models.Order
		if err := models.DB.Where("order_no = ?", orders[i].OrderNo).First(&existing).Error; err == nil {
			stdLog.Printf("Order already exists: %s", orders[i].OrderNo)
			orderIDs = append(orderIDs, existing.ID)
			continue
		}
		if err := models.DB.Create(&orders[i]).Error; err != nil {
			stdLog.Printf("Failed to create order %s: %v", orders[i].OrderNo, err)
			continue
		}
		stdLog.Printf("Created order: %s", orders[i].OrderNo)
		orderIDs = append(orderIDs, orders[i].ID)
	}
	if len(orderIDs) < 1 {
		stdLog.Fatalf("Seed orders missing, aborting")
	}

	var existingReturn models.ReturnRequest
	if err := models.DB.Where("order_id = ?", orderIDs[0]).First(&existingReturn).Error; err == nil {
		stdLog.Printf("Return request already exists for order %d", orderIDs[0])
	} else {
		ret := models.ReturnRequest{
			OrderID:  orderIDs[0],
			BuyerID:  buyerID,
			SellerID: sellerID,
			Reason:   "Item arrived with a cracked lens cover",
			Status:   constants.ReturnStatusPending,
		}
		if err := models.DB.Create(&ret).Error; err != nil {
			stdLog.Printf("Failed to create return request: %v", err)
		} else {
			stdLog.Printf("Created pending return request %d for order %d", ret.ID, ret.OrderID)
		}
	}

	stdLog.Printf("Seed finished")
}
