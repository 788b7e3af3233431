package memcache_fx

import (
	"go.uber.org/fx"

	mem "tunitour/pkg/memcache"
)

var Module = fx.Provide(provideResetTokenStore)

func provideResetTokenStore() mem.TokenStore {
	return mem.NewResetTokens()
}
