package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/handlers"
	"github.com/rentnest/rentnest/internal/middleware/auth"
	"github.com/rentnest/rentnest/internal/models"
)

type Deps struct {
	DB              *gorm.DB
	JWTSecret       []byte
	AuthHandler     *handlers.AuthHandler
	PropertyHandler *handlers.PropertyHandler
	BookingHandler  *handlers.BookingHandler
	AdminHandler    *handlers.AdminHandler
	SearchHandler   *handlers.SearchHandler
}

// Register wires the three resource groups of the API: /api/user for
// renters and public reads, /api/owner for listing management, and
// /api/admin for oversight.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	user := api.Group("/user")
	user.POST("/register", d.AuthHandler.Register)
	user.POST("/login", d.AuthHandler.Login)
	user.POST("/forgotpassword", d.AuthHandler.ForgotPassword)
	user.GET("/getallproperties", d.PropertyHandler.GetAllProperties)
	user.GET("/searchproperties", d.SearchHandler.Search)

	authed := user.Group("", auth.RequireAuth(d.JWTSecret))
	authed.GET("/getuserdata", d.AuthHandler.GetUserData)
	authed.POST("/bookinghandle/:propertyid", d.BookingHandler.Create)
	authed.GET("/getallbookings", d.BookingHandler.ListForUser)

	owner := api.Group("/owner",
		auth.RequireAuth(d.JWTSecret),
		auth.RequireRole(models.RoleOwner, models.RoleAdmin),
	)
	owner.POST("/postproperty", d.PropertyHandler.Create)
	owner.GET("/getallproperties", d.PropertyHandler.ListOwn)
	owner.PUT("/updateproperty/:propertyid", d.PropertyHandler.Update)
	owner.DELETE("/deleteproperty/:propertyid", d.PropertyHandler.Delete)
	owner.GET("/getallbookings", d.BookingHandler.ListForUser)
	owner.POST("/handlebookingstatus", d.BookingHandler.UpdateStatus)

	admin := api.Group("/admin",
		auth.RequireAuth(d.JWTSecret),
		auth.RequireRole(models.RoleAdmin),
	)
	admin.GET("/getallusers", d.AdminHandler.GetAllUsers)
	admin.POST("/handlestatus", d.AdminHandler.HandleStatus)
	admin.GET("/getallproperties", d.AdminHandler.GetAllProperties)
	admin.GET("/getallbookings", d.AdminHandler.GetAllBookings)
}
