package config

import (
	"github.com/gofiber/fiber/v2"

	"dialog-messenger-api/config/common"
)

func NewFiber(cfg *common.Config) *fiber.App {
	appName := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		BodyLimit:     12 * 1024 * 1024,
	})
}
