package main

import (
	"context"
	"log"

	"Gin_postgres_redis_library_tool/app"
	"Gin_postgres_redis_library_tool/config"
	"Gin_postgres_redis_library_tool/db"
	"Gin_postgres_redis_library_tool/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	app.BootstrapFirstLibrarian(context.Background(), application.Config, db.NewRepo(application.DB))

	r := application.Router

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	log.Printf("listening on :%s", application.Config.Port)
	_ = r.Run(":" + application.Config.Port)
}
