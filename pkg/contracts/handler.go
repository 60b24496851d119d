package contracts

import (
	"github.com/julienschmidt/httprouter"
)

// Handler is implemented by each domain's HTTP handler set.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
