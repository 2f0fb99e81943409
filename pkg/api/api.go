// Package api serves single-block DES operations over HTTP.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"des-go/pkg/des"
	"des-go/pkg/log"
	"des-go/pkg/roundviz"
	"des-go/pkg/transcript"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// maxCiphers bounds the per-key cipher cache.
const maxCiphers = 1024

type BlockRequest struct {
	Key   string `json:"key"`
	Block string `json:"block"`
}

type BlockResponse struct {
	Block string `json:"block"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SelfTestResponse struct {
	OK      bool   `json:"ok"`
	Vectors int    `json:"vectors"`
	Error   string `json:"error,omitempty"`
}

type Server struct {
	Api        *echo.Echo
	traceGroup int

	mu      sync.Mutex
	ciphers map[uint64]*des.Cipher
}

// NewServer registers the routes. traceGroup is the default bit grouping for
// traces and graphs.
func NewServer(traceGroup int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := &Server{
		Api:        e,
		traceGroup: traceGroup,
		ciphers:    make(map[uint64]*des.Cipher),
	}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().Str("method", v.Method).Str("uri", v.URI).
				Int("status", v.Status).Dur("latency", v.Latency).Msg("request")
			return nil
		},
	}))

	g := e.Group("/v1")
	g.POST("/encrypt", s.Encrypt)
	g.POST("/decrypt", s.Decrypt)
	g.POST("/trace", s.Trace)
	g.POST("/graph", s.Graph)
	g.GET("/selftest", s.SelfTest)
	return s
}

func (s *Server) Run(addr string) error {
	log.Printf("api listening on %s", addr)
	return s.Api.Start(addr)
}

// cipher returns a shared Cipher for key so its schedule is derived once.
func (s *Server) cipher(key uint64) *des.Cipher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.ciphers[key]; ok {
		return c
	}
	if len(s.ciphers) >= maxCiphers {
		s.ciphers = make(map[uint64]*des.Cipher)
	}
	c := des.New(key)
	s.ciphers[key] = c
	return c
}

func parseRequest(c echo.Context) (key, block uint64, err error) {
	var req BlockRequest
	if err = c.Bind(&req); err != nil {
		return 0, 0, err
	}
	if key, err = des.ParseKey(req.Key); err != nil {
		return 0, 0, err
	}
	if block, err = des.ParseBlock(req.Block); err != nil {
		return 0, 0, err
	}
	return key, block, nil
}

func badRequest(c echo.Context, err error) error {
	if errors.Is(err, des.ErrInvalidKey) || errors.Is(err, des.ErrInvalidBlock) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Code, ErrorResponse{Error: http.StatusText(he.Code)})
	}
	return err
}

func (s *Server) Encrypt(c echo.Context) error {
	key, block, err := parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, BlockResponse{Block: des.FormatHex(s.cipher(key).EncryptBlock(block))})
}

func (s *Server) Decrypt(c echo.Context) error {
	key, block, err := parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, BlockResponse{Block: des.FormatHex(s.cipher(key).DecryptBlock(block))})
}

// record runs the operation named by ?op= (encrypt by default) with a
// recorder attached.
func (s *Server) record(c echo.Context) (*transcript.Transcript, int, error) {
	key, block, err := parseRequest(c)
	if err != nil {
		return nil, 0, err
	}
	dir := des.Encrypt
	switch strings.ToLower(c.QueryParam("op")) {
	case "", "encrypt":
	case "decrypt":
		dir = des.Decrypt
	default:
		return nil, 0, echo.NewHTTPError(http.StatusBadRequest)
	}
	group := s.traceGroup
	if g := c.QueryParam("group"); g != "" {
		if group, err = strconv.Atoi(g); err != nil || group < 0 || group > 64 {
			return nil, 0, echo.NewHTTPError(http.StatusBadRequest)
		}
	}
	t, err := transcript.Record(key, block, dir)
	if err != nil {
		return nil, 0, err
	}
	return t, group, nil
}

func (s *Server) Trace(c echo.Context) error {
	t, group, err := s.record(c)
	if err != nil {
		return badRequest(c, err)
	}
	text, err := t.Text(group)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, text)
}

func (s *Server) Graph(c echo.Context) error {
	t, group, err := s.record(c)
	if err != nil {
		return badRequest(c, err)
	}
	if c.QueryParam("format") == "svg" {
		svg, err := roundviz.SVG(c.Request().Context(), t, group)
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/svg+xml", svg)
	}
	dot, err := roundviz.DOT(t, group)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, dot)
}

func (s *Server) SelfTest(c echo.Context) error {
	start := time.Now()
	if err := des.SelfTest(); err != nil {
		log.Error().Err(err).Msg("self test failed")
		return c.JSON(http.StatusInternalServerError, SelfTestResponse{Vectors: len(des.KnownAnswers), Error: err.Error()})
	}
	log.Debug().Dur("took", time.Since(start)).Msg("self test passed")
	return c.JSON(http.StatusOK, SelfTestResponse{OK: true, Vectors: len(des.KnownAnswers)})
}
