package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Betaniacelis/tiendaonline/internal/handler"
	"github.com/Betaniacelis/tiendaonline/internal/middleware"
	"github.com/Betaniacelis/tiendaonline/internal/service"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	storeHandler    *handler.StoreHandler
	verifier        middleware.TokenVerifier
}

func NewServer(
	checkoutService service.CheckoutService,
	storeService service.StoreService,
	verifier middleware.TokenVerifier,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		storeHandler:    handler.NewStoreHandler(storeService),
		verifier:        verifier,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/productos", s.storeHandler.ListProducts)

	auth := middleware.Auth(s.verifier)

	carrito := api.Group("/carrito", auth)
	carrito.GET("", s.storeHandler.GetCart)
	carrito.POST("", s.storeHandler.AddToCart)
	carrito.DELETE("", s.storeHandler.ClearCart)

	api.GET("/ordenes", s.storeHandler.MyOrders, auth)

	// -------- paypal checkout --------
	pagos := api.Group("/pagos", auth)
	pagos.POST("/crear-orden-paypal", s.checkoutHandler.CreateOrder)
	pagos.POST("/confirmar-pago", s.checkoutHandler.ConfirmPayment)
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
