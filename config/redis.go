package config

import (
	"dialog-messenger-api/config/common"
	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/presence"
)

func NewPresenceStore(cfg *common.Config, log *logger.AppLogger) *presence.Store {
	store, err := presence.NewStore(cfg.GetRedisAddr())
	if err != nil {
		log.Http.Error.Error().Err(err).Msg("failed to connect to redis")
		panic("failed to connect redis")
	}
	return store
}
