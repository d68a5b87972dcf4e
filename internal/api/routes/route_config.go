package routes

import (
	"SlimMom-Backend/internal/api/handlers"
	"SlimMom-Backend/internal/metrics"
	"SlimMom-Backend/internal/middleware"
	"SlimMom-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ProductHandler handlers.ProductHandler
	DiaryHandler   handlers.DiaryHandler
	ContactHandler handlers.ContactHandler
	Middleware     middleware.Middleware
	UserService    user.UserService
	Metrics        *metrics.Metrics
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Products()
	c.UserDiary()
	c.Contacts()
	c.GuestRoute()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.UserService)
}

func (c *Config) User() {
	users := c.App.Group("/api/users")
	// user routes
	{
		users.Post("/signup", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Get("/logout", c.auth(), c.UserHandler.Logout)
		users.Get("/current", c.auth(), c.UserHandler.Current)
		users.Patch("/", c.auth(), c.UserHandler.UpdateSubscription)
		users.Patch("/avatars", c.auth(), c.UserHandler.UpdateAvatar)
		users.Get("/verify/:verificationToken", c.UserHandler.VerifyEmail)
		users.Post("/verify", c.UserHandler.SendVerificationEmail)
	}
}

func (c *Config) Products() {
	products := c.App.Group("/api/products")
	products.Get("/search", c.ProductHandler.SearchProducts)
	products.Get("/blood-group/:group", c.auth(), c.ProductHandler.GetNotRecommendedByBloodGroup)

	products.Get("/", c.auth(), c.ProductHandler.GetProducts)
	products.Post("/", c.auth(), c.ProductHandler.AddProduct)
	products.Get("/:productId", c.ProductHandler.GetProduct)
	products.Put("/:productId", c.auth(), c.ProductHandler.UpdateProduct)
	products.Delete("/:productId", c.auth(), c.ProductHandler.DeleteProduct)
}

func (c *Config) UserDiary() {
	public := c.App.Group("/api/userDiary/public")
	public.Get("/daily-intake", c.DiaryHandler.GetDailyIntake)
	public.Get("/not-recommended-products", c.DiaryHandler.GetNotRecommendedProducts)

	private := c.App.Group("/api/userDiary/private", c.auth())
	private.Get("/daily-intake", c.DiaryHandler.GetDailyIntake)
	private.Get("/not-recommended-products", c.DiaryHandler.GetNotRecommendedProducts)
	private.Post("/add-consumed-product", c.DiaryHandler.AddConsumedProduct)
	private.Delete("/delete-consumed-product", c.DiaryHandler.DeleteConsumedProduct)
	private.Get("/daily-details", c.DiaryHandler.GetDailyDetails)
}

func (c *Config) Contacts() {
	contacts := c.App.Group("/api/contacts", c.auth())
	contacts.Get("/", c.ContactHandler.GetContacts)
	contacts.Post("/", c.ContactHandler.AddContact)
	contacts.Get("/:contactId", c.ContactHandler.GetContact)
	contacts.Put("/:contactId", c.ContactHandler.UpdateContact)
	contacts.Delete("/:contactId", c.ContactHandler.DeleteContact)
	contacts.Patch("/:contactId/favorite", c.ContactHandler.UpdateFavorite)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.Metrics != nil {
		c.App.Get("/metrics", c.Metrics.Handler())
	}
}
