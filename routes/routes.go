package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"dialog-messenger-api/handler"
	"dialog-messenger-api/metrics"
	"dialog-messenger-api/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.UserHandler
	*handler.ChatHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api")
	app.Post("/user/registration", rc.UserHandler.Register)
	app.Post("/user/login", rc.UserHandler.Login)

	rc.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api")
	app.Use(rc.Middleware.JWTProtected)
	app.Use(rc.Middleware.ExtractUserID)

	app.Get("/user/auth", rc.UserHandler.Check)
	app.Put("/user/profile", rc.UserHandler.UpdateProfile)
	app.Get("/user/search", rc.UserHandler.Search)
	app.Post("/user/getUsersInfo", rc.UserHandler.GetUsersInfo)

	app.Post("/chat/newChat", rc.ChatHandler.NewChat)
	app.Delete("/chat/deleteChat", rc.ChatHandler.DeleteChat)
	app.Get("/chat/getChats", rc.ChatHandler.GetChats)
	app.Get("/chat/partner", rc.ChatHandler.GetPartnerInfo)
	app.Get("/chat/getMessage", rc.ChatHandler.GetMessage)
	app.Post("/chat/lastedMessage", rc.ChatHandler.LastedMessage)
	app.Delete("/chat/deleteMessage", rc.ChatHandler.DeleteMessage)
	app.Put("/chat/readMessage", rc.ChatHandler.ReadMessage)
	app.Get("/chat/getReaction", rc.ChatHandler.GetReaction)
	app.Post("/chat/blockedChat", rc.ChatHandler.BlockedChat)
	app.Delete("/chat/unBlockChat", rc.ChatHandler.UnBlockChat)
	app.Post("/chat/checkBlocked", rc.ChatHandler.CheckBlocked)
	app.Post("/chat/uploadImage", rc.ChatHandler.UploadImage)
}

func (rc *ConfigRoute) GetStaticRoute(uploadDir string) {
	rc.App.Static("/static", uploadDir)
}

func (rc *ConfigRoute) GetWebSocketRoute(wsHandler *handler.WebSocketHandler) {
	rc.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	rc.App.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
