// Package api exposes the fleet collections over HTTP for the admin dashboard.
package api

import (
	"cmp"
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/fleet"
	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

const localKeyCollection = "collection"

func NewServer(cfg Config, log logger.Logger, r registry) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: true,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
		JSONEncoder:             json.Marshal,
		JSONDecoder:             json.Unmarshal,
		RequestMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodOptions,
			fiber.MethodHead,
		},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorBody(fiberErr.Message))
		}

		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	s := &server{
		registry: r,
		http:     fiber.New(fiberCfg),
		addr:     cmp.Or(cfg.HTTP.Addr, defaultAddr),
		log:      serveLog,
	}

	s.http.Use(recover.New())
	if len(cfg.AllowOrigins) > 0 {
		s.http.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowOrigins, ","),
			AllowMethods: strings.Join(fiberCfg.RequestMethods, ","),
		}))
	}

	s.setupRoutes()

	return s
}

type server struct {
	registry registry
	http     *fiber.App
	addr     string
	log      logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error)
	go func() { errCh <- s.http.Listen(s.addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errors.Error("serve context done")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	err := s.http.ShutdownWithContext(ctx)
	return errors.WrapFail(err, "shutdown http server")
}

func (s *server) setupRoutes() {
	// status and refresh go before /:id
	s.http.Get("/:kind", s.withCollection, s.handleList)
	s.http.Post("/:kind", s.withCollection, s.handleAdd)
	s.http.Get("/:kind/status", s.withCollection, s.handleStatus)
	s.http.Post("/:kind/refresh", s.withCollection, s.handleRefresh)
	s.http.Get("/:kind/:id", s.withCollection, s.handleGet)
	s.http.Patch("/:kind/:id", s.withCollection, s.handleUpdate)
	s.http.Delete("/:kind/:id", s.withCollection, s.handleDelete)
}

func (s *server) withCollection(c *fiber.Ctx) error {
	kind := fleet.Kind(c.Params("kind"))

	coll, ok := s.registry.Collection(kind)
	if !ok {
		return s.sendError(c, http.StatusNotFound, "unknown collection \""+string(kind)+"\"")
	}

	c.Locals(localKeyCollection, coll)
	return c.Next()
}

func collectionOf(c *fiber.Ctx) fleet.Collection {
	return c.Locals(localKeyCollection).(fleet.Collection)
}

func (s *server) handleList(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(collectionOf(c).List())
}

func (s *server) handleGet(c *fiber.Ctx) error {
	item, found := collectionOf(c).Get(c.Params("id"))
	if !found {
		return s.sendError(c, http.StatusNotFound, "not found")
	}

	return c.Status(http.StatusOK).JSON(item)
}

func (s *server) handleAdd(c *fiber.Ctx) error {
	err := collectionOf(c).Add(c.UserContext(), c.Body())
	if errors.Is(err, fleet.ErrUndecodable) {
		s.log.Warn(err)
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}
	if err != nil {
		return s.sendFailure(c, err)
	}
	return c.Status(http.StatusCreated).JSON(okBody())
}

func (s *server) handleUpdate(c *fiber.Ctx) error {
	var patch entity.Fields
	err := json.Unmarshal(c.Body(), &patch)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "parse update request"))
		return s.sendError(c, http.StatusBadRequest, "bad patch format")
	}

	err = collectionOf(c).Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return s.sendFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(okBody())
}

func (s *server) handleDelete(c *fiber.Ctx) error {
	err := collectionOf(c).Remove(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.sendFailure(c, err)
	}
	return c.Status(http.StatusOK).JSON(okBody())
}

func (s *server) handleRefresh(c *fiber.Ctx) error {
	coll := collectionOf(c)

	err := coll.Refresh(c.UserContext())
	if err != nil {
		return s.sendError(c, http.StatusBadGateway, err.Error())
	}
	return c.Status(http.StatusOK).JSON(coll.List())
}

type statusView struct {
	Kind    fleet.Kind `json:"kind"`
	Mode    string     `json:"mode"`
	Loading bool       `json:"loading"`
	Error   string     `json:"error,omitempty"`
}

func (s *server) handleStatus(c *fiber.Ctx) error {
	coll := collectionOf(c)

	st := statusView{
		Kind:    coll.Kind(),
		Mode:    coll.Mode().String(),
		Loading: coll.Loading(),
	}
	if err := coll.Err(); err != nil {
		st.Error = err.Error()
	}

	return c.Status(http.StatusOK).JSON(st)
}

// sendFailure reports the error of a rejected operation.
func (s *server) sendFailure(c *fiber.Ctx, err error) error {
	return s.sendError(c, http.StatusUnprocessableEntity, err.Error())
}

func (s *server) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"status": "ERROR", "message": msg}
}

func okBody() map[string]string {
	return map[string]string{"status": "OK"}
}
