package api

import (
	"net/http"

	"piggybank/internal/middleware"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

// ListHandler serves the convenience listing routes under /api/lists.
type ListHandler struct {
	groupService *service.GroupService
}

func NewListHandler(groupService *service.GroupService) *ListHandler {
	return &ListHandler{groupService: groupService}
}

// UserGroups lists the groups the named user belongs to. Self only.
func (h *ListHandler) UserGroups(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	groups, aerr := h.groupService.UserGroups(requester, c.Param("username"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	views := make([]gin.H, 0, len(groups))
	for i := range groups {
		views = append(views, groupView(&groups[i]))
	}
	c.JSON(http.StatusOK, gin.H{"groups": views})
}

// GroupMembers lists a group's members. Member only.
func (h *ListHandler) GroupMembers(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	members, aerr := h.groupService.Members(requester, c.Param("groupName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	views := make([]gin.H, 0, len(members))
	for i := range members {
		views = append(views, memberView(&members[i]))
	}
	c.JSON(http.StatusOK, gin.H{"members": views})
}
