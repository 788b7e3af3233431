package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/infra"
	"tunitour/internal/repositories"
	"tunitour/internal/services"
	mem "tunitour/pkg/memcache"
	"tunitour/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg *infra.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	mailService services.IMailService,
	tokens mem.TokenStore,
	jwt *utils.JWTManager,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, mailService, tokens, jwt, log.Named("accounts"))
}
