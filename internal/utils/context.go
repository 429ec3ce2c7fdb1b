package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/buglane-dev/buglane/internal/authz"
	"github.com/buglane-dev/buglane/internal/middleware"
	"github.com/buglane-dev/buglane/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

// CurrentActor adapts the authenticated user into the identity the
// authorization policy operates on.
func CurrentActor(ctx *gin.Context) (authz.Actor, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return authz.Actor{}, err
	}

	return authz.Actor{ID: user.ID, Role: user.Role}, nil
}
