package api

import (
	"net/http"

	"piggybank/internal/middleware"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	goals, aerr := h.goalService.List(requester, c.Param("groupName"), c.Param("bankName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	views := make([]gin.H, 0, len(goals))
	for i := range goals {
		views = append(views, goalView(&goals[i]))
	}
	c.JSON(http.StatusOK, gin.H{"goals": views})
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	goal, aerr := h.goalService.Get(requester, c.Param("groupName"), c.Param("bankName"), c.Param("goalName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	c.JSON(http.StatusOK, goalView(goal))
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, aerr := h.goalService.Create(requester, c.Param("groupName"), c.Param("bankName"), req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "goal created",
		"goal":       goalView(goal),
	})
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, aerr := h.goalService.Update(requester, c.Param("groupName"), c.Param("bankName"), c.Param("goalName"), req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "goal updated",
		"goal":       goalView(goal),
	})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	if aerr := h.goalService.Delete(requester, c.Param("groupName"), c.Param("bankName"), c.Param("goalName")); aerr != nil {
		respondError(c, aerr)
		return
	}
	respondMessage(c, "goal deleted")
}
