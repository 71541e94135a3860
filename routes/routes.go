package routes

import (
	"github.com/SwatiiB/kleCanteen-sub000/configs"
	"github.com/SwatiiB/kleCanteen-sub000/controllers"
	"github.com/SwatiiB/kleCanteen-sub000/middlewares"
	"github.com/SwatiiB/kleCanteen-sub000/repository"
	"github.com/SwatiiB/kleCanteen-sub000/services"
	"github.com/SwatiiB/kleCanteen-sub000/ws"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	examRepo := repository.NewExamRepository(db)

	// Services
	gateway := services.NewHTTPPaymentGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey)
	reconciler := services.NewRefundReconciler(db, paymentRepo, gateway)
	lifecycle := services.NewLifecycleService(db, orderRepo, paymentRepo, reconciler)
	priority := services.NewPriorityService(examRepo, cfg.PriorityFee)
	orderSvc := services.NewOrderService(db, orderRepo, paymentRepo, priority)

	// Live canteen boards
	hub := ws.NewOrderHub()
	lifecycle.SetNotifier(hub)
	go hub.Run()

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	canteenCtrl := controllers.NewCanteenController(db)
	menuCtrl := controllers.NewMenuController(db)
	examCtrl := controllers.NewExamController(db)
	feedbackCtrl := controllers.NewFeedbackController(db)
	orderCtrl := controllers.NewOrderController(orderSvc)
	staffOrderCtrl := controllers.NewStaffOrderController(orderSvc, lifecycle)
	adminOrderCtrl := controllers.NewAdminOrderController(orderSvc, lifecycle, reconciler)
	adminCtrl := controllers.NewAdminController(db)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public directory
	r.GET("/canteens", canteenCtrl.List)
	r.GET("/canteens/:id", canteenCtrl.Detail)
	r.GET("/canteens/:id/menu", menuCtrl.ListForCanteen)

	// Customer
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.POST("/orders/:id/payment/confirm", orderCtrl.ConfirmPayment)
		u.POST("/feedback", feedbackCtrl.Create)
	}
	r.GET("/profile/orders", middlewares.AuthMiddleware(cfg.JWTSecret), orderCtrl.ListForMe)

	// Canteen staff
	staff := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "staff"))
	{
		staff.GET("/orders", staffOrderCtrl.List)
		staff.GET("/orders/:id", staffOrderCtrl.Detail)
		staff.PATCH("/orders/:id/accept", staffOrderCtrl.Accept)
		staff.PATCH("/orders/:id/ready", staffOrderCtrl.Ready)
		staff.PATCH("/orders/:id/deliver", staffOrderCtrl.Deliver)
		staff.PATCH("/orders/:id/complete", staffOrderCtrl.Complete)
		staff.PATCH("/orders/:id/cancel", staffOrderCtrl.Cancel)

		staff.POST("/menu", menuCtrl.Create)
		staff.PATCH("/menu/:id", menuCtrl.Update)
		staff.DELETE("/menu/:id", menuCtrl.Delete)
		staff.GET("/feedback", feedbackCtrl.ListForCanteen)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.POST("/canteens", canteenCtrl.Create)
		admin.PATCH("/canteens/:id", canteenCtrl.Update)

		admin.POST("/staff", adminCtrl.CreateStaff)
		admin.GET("/staff", adminCtrl.ListStaff)

		admin.GET("/exams", examCtrl.List)
		admin.POST("/exams", examCtrl.Create)
		admin.PATCH("/exams/:id", examCtrl.Update)
		admin.DELETE("/exams/:id", examCtrl.Delete)

		admin.GET("/orders", adminOrderCtrl.List)
		admin.GET("/orders/:id", adminOrderCtrl.Detail)
		admin.PATCH("/orders/:id/accept", adminOrderCtrl.Accept)
		admin.PATCH("/orders/:id/ready", adminOrderCtrl.Ready)
		admin.PATCH("/orders/:id/deliver", adminOrderCtrl.Deliver)
		admin.PATCH("/orders/:id/complete", adminOrderCtrl.Complete)
		admin.PATCH("/orders/:id/cancel", adminOrderCtrl.Cancel)
		admin.POST("/orders/:id/refund", adminOrderCtrl.Refund)

		admin.POST("/menu", menuCtrl.Create)
		admin.PATCH("/menu/:id", menuCtrl.Update)
		admin.DELETE("/menu/:id", menuCtrl.Delete)
		admin.GET("/feedback", feedbackCtrl.ListForCanteen)
	}

	// Live order boards
	r.GET("/ws/orders/:canteenId", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
