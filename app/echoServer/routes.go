package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/auth"
	"github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/catalog"
	"github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/client"
	"github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/rental"
	"github.com/DavidOvMu23/Viniloteca/app/echoServer/jwtx"
	"github.com/DavidOvMu23/Viniloteca/model"
)

type C struct {
	Auth      *auth.Controller
	Catalog   *catalog.Controller
	Client    *client.Controller
	Rental    *rental.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	// user_id + role extraction
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			ctx.Set("is_supervisor", role == string(model.RoleSupervisor))
			return next(ctx)
		}
	})

	// Catalog (Discogs-backed, cached)
	auth.GET("/catalog/search", c.Catalog.Search)
	auth.GET("/catalog/releases/:id", c.Catalog.Release)

	// Rentals
	auth.POST("/rentals", c.Rental.Create)
	auth.POST("/rentals/:id/return", c.Rental.Return)
	auth.GET("/rentals/my", c.Rental.MyHistory)

	// Clients (supervisor only)
	auth.GET("/clients", c.Client.List)
	auth.GET("/clients/:id", c.Client.Detail)
	auth.PATCH("/clients/:id", c.Client.Update)
	auth.GET("/clients/:id/rentals", c.Client.Rentals)
}
