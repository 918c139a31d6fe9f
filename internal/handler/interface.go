package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/pkg/credstore"
	"github.com/nookplot/gateway/pkg/hostedcode"
)

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared services handed to every manager
// constructor at startup.
type RegisterConfig struct {
	DB     *gorm.DB
	Engine *hostedcode.Engine
	Store  *hostedcode.Store
	Feed   *hostedcode.Feed
	Bridge *hostedcode.Bridge
	Tasks  *hostedcode.Tasks
	Creds  *credstore.Store
}

type RegisterFunc func(conf *RegisterConfig) Manager

// Registers collects manager constructors via init() in each handler file.
var Registers []RegisterFunc
