// internal/api/routes/routes.go
package routes

import (
	"net/http"

	"coffee-scm-api-server/internal/api/handlers"
	"coffee-scm-api-server/internal/qr"
	"coffee-scm-api-server/internal/sms"
	"coffee-scm-api-server/internal/socket"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers to the HTTP surface. There is no
// authentication layer in this system: callers identify themselves in
// the request body.
func SetupRouter(
	storage store.Storage,
	encoder *qr.Encoder,
	gateway sms.Gateway,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	userHandler := &handlers.UserHandler{Store: storage}
	cooperativeHandler := &handlers.CooperativeHandler{Store: storage}
	farmerHandler := &handlers.FarmerHandler{Store: storage}
	lotHandler := &handlers.LotHandler{Store: storage, Encoder: encoder}
	inventoryHandler := &handlers.InventoryHandler{Store: storage}
	auctionHandler := &handlers.AuctionHandler{Store: storage, Hub: wsHub}
	bidHandler := &handlers.BidHandler{Store: storage, Hub: wsHub}
	paymentHandler := &handlers.PaymentHandler{Store: storage}
	smsHandler := &handlers.SmsHandler{Store: storage, Gateway: gateway}
	dashboardHandler := &handlers.DashboardHandler{Store: storage}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		apiV1.GET("/ws", webSocketHandler.ServeWs)

		users := apiV1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:role", userHandler.GetUsersByRole)
		}

		cooperatives := apiV1.Group("/cooperatives")
		{
			cooperatives.POST("", cooperativeHandler.CreateCooperative)
			cooperatives.GET("", cooperativeHandler.GetAllCooperatives)
		}

		farmers := apiV1.Group("/farmers")
		{
			farmers.POST("", farmerHandler.CreateFarmer)
			farmers.GET("", farmerHandler.GetFarmers)
		}

		lots := apiV1.Group("/lots")
		{
			lots.POST("", lotHandler.CreateLot)
			lots.GET("", lotHandler.GetLots)
			lots.GET("/:lotId", lotHandler.GetLotByID)
			lots.PUT("/:lotId/status", lotHandler.UpdateLotStatus)
		}

		inventory := apiV1.Group("/inventory")
		{
			inventory.POST("", inventoryHandler.RecordInventory)
			inventory.GET("", inventoryHandler.GetInventory)
		}

		auctions := apiV1.Group("/auctions")
		{
			auctions.POST("", auctionHandler.OpenAuction)
			auctions.GET("", auctionHandler.GetActiveAuctions)
			auctions.POST("/:id/close", auctionHandler.CloseAuction)
			auctions.POST("/:id/cancel", auctionHandler.CancelAuction)
			auctions.GET("/:id/bids", auctionHandler.GetAuctionBids)
		}

		apiV1.POST("/bids", bidHandler.PlaceBid)

		payments := apiV1.Group("/payments")
		{
			payments.POST("", paymentHandler.CreatePayment)
			payments.GET("/:id", paymentHandler.GetPaymentsByUser)
			payments.PUT("/:id/status", paymentHandler.UpdatePaymentStatus)
		}

		smsRoutes := apiV1.Group("/sms")
		{
			smsRoutes.POST("/send", smsHandler.SendSms)
			smsRoutes.POST("/:id/resend", smsHandler.ResendSms)
			smsRoutes.GET("/pending", smsHandler.GetPendingSms)
		}

		apiV1.GET("/dashboard/stats", dashboardHandler.GetStats)
	}

	return router
}
