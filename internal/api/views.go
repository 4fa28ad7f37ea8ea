package api

import (
	"piggybank/internal/model"

	"github.com/gin-gonic/gin"
)

// Response shaping helpers. The password hash is never part of any view;
// foreign profiles are additionally redacted to their public fields.

func fullUserView(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
	}
}

func redactedUserView(u *model.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
	}
}

func groupView(g *model.Group) gin.H {
	return gin.H{
		"id":          g.ID,
		"name":        g.Name,
		"description": g.Description,
		"owner":       g.Owner.Username,
		"createdAt":   g.CreatedAt,
	}
}

func memberView(m *model.Membership) gin.H {
	return gin.H{
		"username": m.User.Username,
		"role":     m.Role,
		"joinedAt": m.CreatedAt,
	}
}

func bankView(b *model.PiggyBank) gin.H {
	return gin.H{
		"id":          b.ID,
		"name":        b.Name,
		"description": b.Description,
		"createdAt":   b.CreatedAt,
	}
}

func goalView(g *model.Goal) gin.H {
	return gin.H{
		"id":           g.ID,
		"name":         g.Name,
		"description":  g.Description,
		"targetAmount": g.TargetAmount,
		"deadline":     g.Deadline,
		"createdAt":    g.CreatedAt,
	}
}

func transactionView(t *model.Transaction) gin.H {
	view := gin.H{
		"id":        t.ID,
		"kind":      t.Kind,
		"amount":    t.Amount,
		"tags":      t.Tags,
		"createdAt": t.CreatedAt,
	}
	if t.Payee != nil {
		view["payee"] = t.Payee.Username
	}
	return view
}
