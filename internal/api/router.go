package api

import (
	"net/http"

	"piggybank/internal/invite"
	"piggybank/internal/middleware"
	"piggybank/internal/repository"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

// NewRouter wires repositories, services and handlers and mounts every
// route. The invite manager is injected so its state has a single owner.
func NewRouter(invites *invite.Manager) *gin.Engine {
	userRepo := repository.NewUserRepository()
	groupRepo := repository.NewGroupRepository()
	memberRepo := repository.NewMembershipRepository()
	bankRepo := repository.NewPiggyBankRepository()
	goalRepo := repository.NewGoalRepository()
	txRepo := repository.NewTransactionRepository()

	authz := service.NewAuthzService(memberRepo)
	authService := service.NewAuthService(userRepo)
	groupService := service.NewGroupService(groupRepo, memberRepo, userRepo, authz, invites)
	bankService := service.NewBankService(bankRepo, groupRepo, authz)
	goalService := service.NewGoalService(goalRepo, bankRepo, groupRepo, authz)
	txService := service.NewTransactionService(txRepo, bankRepo, groupRepo, userRepo, authz)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	groupHandler := NewGroupHandler(groupService)
	bankHandler := NewBankHandler(bankService)
	goalHandler := NewGoalHandler(goalService)
	txHandler := NewTransactionHandler(txService)
	listHandler := NewListHandler(groupService)

	r := gin.New()
	r.Use(middleware.GinZapLogger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// public routes
	api.POST("/users/new", authHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.GET("/users/:username", middleware.OptionalAuthMiddleware(), userHandler.GetUser)

	// protected routes
	auth := api.Group("", middleware.AuthMiddleware())

	auth.PATCH("/users/:username", userHandler.UpdateUser)
	auth.DELETE("/users/:username", userHandler.DeleteUser)

	auth.POST("/groups/new", groupHandler.CreateGroup)
	auth.GET("/groups/:groupName", groupHandler.GetGroup)
	auth.PATCH("/groups/:groupName", groupHandler.UpdateGroup)
	auth.DELETE("/groups/:groupName", groupHandler.DeleteGroup)
	auth.GET("/groups/:groupName/invites", groupHandler.ListInvites)
	auth.GET("/groups/:groupName/invites/new", groupHandler.CreateInvite)
	auth.GET("/groups/:groupName/invite/:inviteID", groupHandler.JoinGroup)
	auth.DELETE("/groups/:groupName/members/:username", groupHandler.RemoveMember)

	auth.GET("/banks/:groupName", bankHandler.ListBanks)
	auth.POST("/banks/:groupName", bankHandler.CreateBank)
	auth.GET("/banks/:groupName/:bankName", bankHandler.GetBank)
	auth.PATCH("/banks/:groupName/:bankName", bankHandler.UpdateBank)
	auth.DELETE("/banks/:groupName/:bankName", bankHandler.DeleteBank)

	auth.GET("/goals/:groupName/:bankName", goalHandler.ListGoals)
	auth.POST("/goals/:groupName/:bankName", goalHandler.CreateGoal)
	auth.GET("/goals/:groupName/:bankName/:goalName", goalHandler.GetGoal)
	auth.PATCH("/goals/:groupName/:bankName/:goalName", goalHandler.UpdateGoal)
	auth.DELETE("/goals/:groupName/:bankName/:goalName", goalHandler.DeleteGoal)

	// transactions are immutable, so no PATCH or DELETE is mounted
	auth.GET("/transactions/:groupName/:bankName", txHandler.ListTransactions)
	auth.POST("/transactions/:groupName/:bankName", txHandler.CreateTransaction)
	auth.GET("/transactions/:groupName/:bankName/:txID", txHandler.GetTransaction)

	auth.GET("/lists/groups/:username", listHandler.UserGroups)
	auth.GET("/lists/members/:groupName", listHandler.GroupMembers)

	return r
}
