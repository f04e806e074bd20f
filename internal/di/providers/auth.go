package providers

import (
	"github.com/samber/do/v2"

	"github.com/beadfanatic/server/internal/auth"
	"github.com/beadfanatic/server/internal/config"
	"github.com/beadfanatic/server/internal/logger"
)

// AuthKey wraps the admin token key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the admin token key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.TokenKeyPath())
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenKey = key

	log.Info("Admin token key loaded", "token_duration", cfg.Auth.TokenDuration)
	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(key), cfg.Auth.TokenDuration)
}
