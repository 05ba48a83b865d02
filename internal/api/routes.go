package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	auth := app.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/token", handler.Login)

	users := app.Group("/users", handler.AuthRequired)
	users.Get("/me", handler.Me)
	users.Put("/me", handler.UpdateMe)

	activities := app.Group("/activities", handler.AuthRequired)
	activities.Get("", handler.ListActivities)
	activities.Post("", handler.CreateActivity)
	activities.Get("/:id", handler.GetActivity)
	activities.Put("/:id", handler.UpdateActivity)
	activities.Delete("/:id", handler.DeleteActivity)
	activities.Post("/:id/timer", handler.TimerAction)

	tags := app.Group("/tags", handler.AuthRequired)
	tags.Get("", handler.ListTags)
	tags.Post("", handler.CreateTag)
	tags.Delete("/:id", handler.DeleteTag)
}
