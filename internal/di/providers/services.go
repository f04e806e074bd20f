package providers

import (
	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/logger"
	"github.com/beadfanatic/server/internal/service"
)

// ProvideIdentifyService provides the bead identification service.
func ProvideIdentifyService(i do.Injector) (*service.IdentifyService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	vision := do.MustInvoke[*VisionHandle](i)
	store := do.MustInvoke[*StoreHandle](i)

	return service.NewIdentifyService(vision.Chain, store.Store, log.Logger), nil
}
