package api

import (
	"net/http"

	"piggybank/internal/middleware"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	group, aerr := h.groupService.Create(requester, req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "group created",
		"group":      groupView(group),
	})
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	group, members, aerr := h.groupService.Get(requester, c.Param("groupName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	view := groupView(group)
	memberViews := make([]gin.H, 0, len(members))
	for i := range members {
		memberViews = append(memberViews, memberView(&members[i]))
	}
	view["members"] = memberViews
	c.JSON(http.StatusOK, view)
}

func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	group, aerr := h.groupService.Update(requester, c.Param("groupName"), req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "group updated",
		"group":      groupView(group),
	})
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	if aerr := h.groupService.Delete(requester, c.Param("groupName")); aerr != nil {
		respondError(c, aerr)
		return
	}
	respondMessage(c, "group deleted")
}

func (h *GroupHandler) ListInvites(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	invites, aerr := h.groupService.ListInvites(requester, c.Param("groupName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (h *GroupHandler) CreateInvite(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	inv, aerr := h.groupService.CreateInvite(requester, c.Param("groupName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "invite created",
		"invite":     inv,
	})
}

// JoinGroup redeems an invite and adds the caller as a member.
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	aerr := h.groupService.Join(requester, c.Param("groupName"), c.Param("inviteID"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	respondMessage(c, "joined group")
}

// RemoveMember handles both self-leave and owner-initiated removal.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	aerr := h.groupService.RemoveMember(requester, c.Param("groupName"), c.Param("username"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	respondMessage(c, "member removed")
}
