package routes

import (
	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/controllers"
	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/middlewares"
	"github.com/Makarios44/smart-plan-eats-sub000/models"
	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the long-lived services the router hands to controllers.
type Deps struct {
	LLM  *llm.Client
	Hub  *services.RealtimeHub
	Push *services.PushService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	feedbackCtl := controllers.NewFeedbackController(services.NewFeedbackService(config.DB))
	progressSvc := services.NewProgressService(config.DB)
	progressCtl := controllers.NewProgressController(progressSvc)
	planCtl := controllers.NewPlanController(services.NewPlanService(config.DB, d.LLM))
	suggestionCtl := controllers.NewSuggestionController(services.NewSuggestionService(config.DB, d.LLM))
	insightCtl := controllers.NewInsightController(services.NewInsightService(config.DB, d.LLM))
	nutritionistCtl := controllers.NewNutritionistController(services.NewGroupService(config.DB, d.LLM), progressSvc)
	realtimeCtl := controllers.NewRealtimeController(d.Hub)
	deviceCtl := controllers.NewDeviceController(d.Push)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Public shared meal plan view
	r.GET("/shared/plans/:token", planCtl.GetShared)

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/onboarding", controllers.CompleteOnboarding)

		user.POST("/feedback", feedbackCtl.Submit)
		user.GET("/feedback", feedbackCtl.History)
		user.GET("/adjustments", feedbackCtl.Adjustments)

		user.GET("/progress/summary", progressCtl.Summary)
		user.GET("/progress/weight", progressCtl.WeightHistory)
		user.GET("/progress/week", progressCtl.WeeklyOverview)

		user.GET("/pantry", controllers.ListPantry)
		user.POST("/pantry", controllers.UpsertPantryItem)
		user.DELETE("/pantry/:id", controllers.DeletePantryItem)

		user.POST("/plans", planCtl.Generate)
		user.GET("/plans", planCtl.List)
		user.GET("/plans/:id", planCtl.Get)

		user.POST("/suggestions/pantry", suggestionCtl.FromPantry)
		user.POST("/suggestions/swap", suggestionCtl.Swap)

		user.POST("/insights", insightCtl.Generate)
		user.GET("/insights/latest", insightCtl.Latest)

		user.GET("/alerts", controllers.ListAlerts)
		user.POST("/alerts/:id/read", controllers.MarkAlertRead)
		user.POST("/devices", deviceCtl.Register)
		user.GET("/ws", realtimeCtl.AlertsWS)
	}

	// Nutritionist panel
	nutritionist := r.Group("/nutritionist")
	nutritionist.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleNutritionist))
	{
		nutritionist.GET("/clients", nutritionistCtl.Clients)
		nutritionist.POST("/clients/:id/assign", nutritionistCtl.AssignClient)
		nutritionist.GET("/clients/:id/progress", nutritionistCtl.ClientProgress)
		nutritionist.POST("/analysis", nutritionistCtl.AnalyzeGroup)
	}

	// Admin panel
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.PUT("/users/:id/role", controllers.ChangeUserRole)
		admin.PUT("/users/:id/disabled", controllers.SetUserDisabled)
	}

	return r
}
