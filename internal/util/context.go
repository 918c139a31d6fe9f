package util

import (
	"github.com/gin-gonic/gin"

	"github.com/nookplot/gateway/dao/model"
)

const (
	ActorIDKey      = "x-actor-id"
	ActorAddressKey = "x-actor-address"
	UsernameKey     = "x-actor-name"

	RolePlatformKey = "x-role-platform"
)

func SetJWTContext(
	c *gin.Context,
	msg JWTMessage,
) {
	c.Set(ActorIDKey, msg.ActorID)
	c.Set(ActorAddressKey, msg.ActorAddress)
	c.Set(UsernameKey, msg.Username)

	c.Set(RolePlatformKey, msg.RolePlatform)
}

func GetToken(ctx *gin.Context) JWTMessage {
	var msg JWTMessage
	msg.ActorID = ctx.GetString(ActorIDKey)
	msg.ActorAddress = ctx.GetString(ActorAddressKey)
	msg.Username = ctx.GetString(UsernameKey)

	rolePlatform, _ := ctx.Get(RolePlatformKey)
	msg.RolePlatform = rolePlatform.(model.Role)
	return msg
}
