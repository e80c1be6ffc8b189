package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/routes"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.Sync()

	configs.ConnectDB()

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:   engine,
		AppName: "undangan.link",
	})

	routes.SetupRoutes(app)

	addr := ":" + configs.GetEnv("APP_PORT", "3000")
	configslog.SLog.Infof("listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("server stopped", zap.Error(err))
	}
}
