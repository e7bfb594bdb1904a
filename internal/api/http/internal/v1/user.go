package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initUsersRoutes(router *gin.Engine) {
	users := router.Group("/users", h.authenticateUser, h.requireUser)

	users.GET("/me", h.me)
	users.GET("/", h.allUsers)
}

func (h *Handler) me(c *gin.Context) {
	email, err := h.userEmail(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := h.services.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) allUsers(c *gin.Context) {
	users, err := h.services.Users.GetAll(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}

	c.JSON(http.StatusOK, out)
}
