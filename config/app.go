package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"dialog-messenger-api/config/common"
	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/handler"
	"dialog-messenger-api/middleware"
	"dialog-messenger-api/presence"
	"dialog-messenger-api/repository"
	"dialog-messenger-api/routes"
	"dialog-messenger-api/security"
	"dialog-messenger-api/usecase"
	"dialog-messenger-api/ws"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	AppLog *logger.AppLogger
	*DBConfig
	Presence *presence.Store
	*security.JWT
	*middleware.Middleware
	UploadDir string
}

func RunServer() {
	newConfig := common.NewViper()
	app := NewFiber(newConfig)
	appLog := logger.NewLogger()
	log := NewLogrus()
	newDB := NewDB(newConfig, appLog)
	newPresence := NewPresenceStore(newConfig, appLog)
	newValidator := NewValidator()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)

	clientOrigin := newConfig.GetClientOrigin()
	if clientOrigin == "" {
		clientOrigin = "http://localhost:8080"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: clientOrigin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	App(&AppConfig{
		App:        app,
		Validate:   newValidator,
		Logger:     log,
		AppLog:     appLog,
		DBConfig:   newDB,
		Presence:   newPresence,
		JWT:        newJWT,
		Middleware: newMiddleware,
		UploadDir:  newConfig.GetUploadDir(),
	})

	addr := fmt.Sprintf(":%s", newConfig.GetServerPort())
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

func App(aC *AppConfig) {
	newUserRepository := repository.NewUserRepository(aC.GetDB())
	newDialogRepository := repository.NewDialogRepository(aC.GetDB())
	newMessageRepository := repository.NewMessageRepository(aC.GetDB())
	newReactionRepository := repository.NewReactionRepository(aC.GetDB())
	newBlockRepository := repository.NewBlockRepository(aC.GetDB())

	newAccess := usecase.NewAccessValidator(newDialogRepository, newMessageRepository)

	hub := ws.NewHub(aC.AppLog)
	tracker := ws.NewTracker(newUserRepository, newDialogRepository, aC.Presence, hub, aC.AppLog)

	newUserUsecase := usecase.NewUserUsecase(newUserRepository, aC.Presence, aC.Validate, aC.Logger, aC.JWT)
	newDialogUsecase := usecase.NewDialogUsecase(newDialogRepository, newUserRepository, newAccess, hub, aC.Presence, aC.Validate, aC.Logger)
	newMessageUsecase := usecase.NewMessageUsecase(newMessageRepository, newDialogRepository, newAccess, hub, aC.Logger)
	newReactionUsecase := usecase.NewReactionUsecase(newReactionRepository, newMessageRepository, newDialogRepository, newAccess, hub, aC.Logger)
	newBlockUsecase := usecase.NewBlockUsecase(newBlockRepository, newDialogRepository, newAccess, hub, aC.Logger)

	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Logger)
	newChatHandler := handler.NewChatHandler(newDialogUsecase, newMessageUsecase, newReactionUsecase, newBlockUsecase, aC.Logger, aC.UploadDir)

	wsHandler := handler.NewWebSocketHandler(hub, tracker, newUserRepository, newDialogUsecase, newMessageUsecase, newReactionUsecase, newBlockUsecase, aC.AppLog)

	route := routes.ConfigRoute{
		App:         aC.App,
		Middleware:  aC.Middleware,
		UserHandler: newUserHandler,
		ChatHandler: newChatHandler,
	}
	route.GetRoute()
	route.GetStaticRoute(aC.UploadDir)
	route.GetWebSocketRoute(wsHandler)
}
