package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nikmy/nestedtxn/internal/ledger"
	"github.com/nikmy/nestedtxn/pkg/errors"
	"github.com/nikmy/nestedtxn/pkg/logger"
)

func NewServer(cfg Config, log logger.Logger, l Ledger) Server {
	cfg = cfg.withDefaults()
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: len(cfg.Proxy.Trusted) > 0,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
		RequestMethods:          []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodPost},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorBody(fe.Message))
		}

		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).JSON(errorBody("internal error"))
	}

	s := &server{
		ledger: l,
		http:   fiber.New(fiberCfg),
		addr:   cfg.HTTP.Addr,
		log:    serveLog,

		shutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}

	s.setupRoutes()

	return s
}

type server struct {
	ledger Ledger
	http   *fiber.App
	addr   string
	log    logger.Logger

	shutdownTimeout time.Duration
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Listen(s.addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errors.Error("serve context done")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	return errors.WrapFail(s.http.ShutdownWithContext(ctx), "shutdown http server")
}

func (s *server) setupRoutes() {
	s.http.Post("/accounts", s.handleOpen)
	s.http.Get("/accounts/:id", s.handleBalance)
	s.http.Post("/transfers", s.handleTransfer)
}

func (s *server) handleOpen(c *fiber.Ctx) error {
	var acc ledger.Account
	err := c.BodyParser(&acc)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "parse account payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	err = s.ledger.Open(c.UserContext(), acc)
	if err != nil {
		return s.ledgerError(c, err, "open account")
	}

	return c.Status(http.StatusCreated).JSON(acc)
}

func (s *server) handleBalance(c *fiber.Ctx) error {
	id := c.Params("id")

	balance, err := s.ledger.Balance(c.UserContext(), id)
	if err != nil {
		return s.ledgerError(c, err, "read balance")
	}

	return c.Status(http.StatusOK).JSON(ledger.Account{ID: id, Balance: balance})
}

func (s *server) handleTransfer(c *fiber.Ctx) error {
	var t ledger.Transfer
	err := c.BodyParser(&t)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "parse transfer payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	receipt, err := s.ledger.Transfer(c.UserContext(), t)
	if err != nil {
		return s.ledgerError(c, err, "transfer funds")
	}

	return c.Status(http.StatusOK).JSON(receipt)
}

func (s *server) ledgerError(c *fiber.Ctx, err error, what string) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidTransfer):
		return s.sendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrUnknownAccount):
		return s.sendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return s.sendError(c, http.StatusConflict, err.Error())
	default:
		return errors.WrapFail(err, what)
	}
}

func (s *server) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"status": "ERROR", "message": msg}
}
