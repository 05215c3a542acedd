// Package server exposes the UF2 decoder over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/moffa90/go-uf2/converter"
	"github.com/moffa90/go-uf2/internal/logger"
	"github.com/moffa90/go-uf2/internal/report"
	"github.com/moffa90/go-uf2/uf2"
)

// DefaultMaxUploadSize limits request bodies when Config.MaxUploadSize is zero.
const DefaultMaxUploadSize = 32 * 1024 * 1024

// Config holds the server settings.
type Config struct {
	// MaxUploadSize is the largest accepted UF2 body in bytes
	MaxUploadSize int64

	// MaxOutputSize caps decoded images, see converter.WithMaxOutputSize.
	// Zero means converter.DefaultMaxOutputSize; the cap cannot be disabled.
	MaxOutputSize int

	// HexLineLength is passed to converter.WithHexLineLength
	HexLineLength int

	Logger logger.Logger
}

// Server handles decode requests.
type Server struct {
	cfg Config
	log logger.Logger
}

// ErrorBody is the JSON error payload.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Block   *int   `json:"block,omitempty"`
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	if cfg.MaxOutputSize <= 0 {
		cfg.MaxOutputSize = converter.DefaultMaxOutputSize
	}
	if cfg.HexLineLength == 0 {
		cfg.HexLineLength = converter.DefaultHexLineLength
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Server{cfg: cfg, log: log}
}

// Register installs the routes and the request ID middleware on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)

	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/families", s.handleFamilies)
	e.POST("/v1/decode", s.handleDecode)
}

// requestID tags every response with a fresh X-Request-ID unless the client sent one.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		return next(c)
	}
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFamilies(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, report.FamilyTable())
}

// handleDecode decodes the raw UF2 request body.
//
// Query parameters:
//
//	format  empty for a JSON report, "bin" or "hex" for the image
//	family  family name or number that must be present
//	name    source name recorded in the report
func (s *Server) handleDecode(c *echo.Context) error {
	log := s.log.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.cfg.MaxUploadSize+1))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", fmt.Sprintf("read body: %v", err), nil)
	}
	if int64(len(body)) > s.cfg.MaxUploadSize {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error",
			fmt.Sprintf("body exceeds %d bytes", s.cfg.MaxUploadSize), nil)
	}

	opts := []converter.Option{
		converter.WithLogger(log),
		converter.WithMaxOutputSize(s.cfg.MaxOutputSize),
		converter.WithHexLineLength(s.cfg.HexLineLength),
	}
	family, hasFamily := uint32(0), false
	if f := c.QueryParam("family"); f != "" {
		id, err := uf2.ParseFamily(f)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), nil)
		}
		family, hasFamily = id, true
		opts = append(opts, converter.WithFamily(id))
	}

	ctx := c.Request().Context()
	formatParam := c.QueryParam("format")
	if formatParam == "" {
		img, err := converter.New(opts...).Decode(ctx, body)
		if err != nil {
			return s.writeConvertError(c, err)
		}
		if _, ok := img.Families[family]; hasFamily && !ok {
			return s.writeConvertError(c, &converter.FamilyNotFoundError{
				Family: family,
				Found:  uf2.SortedFamilies(img.Families),
			})
		}
		log.Info("decoded", "input_bytes", len(body), "image_bytes", len(img.Data))
		return writeJSON(c, http.StatusOK, report.New(c.QueryParam("name"), body, img))
	}

	format, err := converter.ParseFormat(formatParam)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), nil)
	}
	opts = append(opts, converter.WithFormat(format))

	var out bytes.Buffer
	res, err := converter.New(opts...).Convert(ctx, body, &out)
	if err != nil {
		return s.writeConvertError(c, err)
	}

	c.Response().Header().Set("X-UF2-Base", fmt.Sprintf("0x%08X", res.Base))
	return c.Blob(http.StatusOK, format.ContentType(), out.Bytes())
}

// writeConvertError maps decoder and converter errors to HTTP responses.
func (s *Server) writeConvertError(c *echo.Context, err error) error {
	if idx, ok := uf2.BlockIndex(err); ok {
		return writeError(c, http.StatusUnprocessableEntity, "decode_error", err.Error(), &idx)
	}

	var (
		tooLarge *converter.OutputTooLargeError
		notFound *converter.FamilyNotFoundError
		empty    *converter.EmptyImageError
		overlap  *converter.SegmentOverlapError
	)
	switch {
	case errors.As(err, &tooLarge):
		return writeError(c, http.StatusRequestEntityTooLarge, "output_too_large", err.Error(), nil)
	case errors.As(err, &notFound), errors.As(err, &empty), errors.As(err, &overlap):
		return writeError(c, http.StatusUnprocessableEntity, "conversion_error", err.Error(), nil)
	default:
		s.log.Error("conversion failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), nil)
	}
}

func writeError(c *echo.Context, status int, errType, msg string, block *int) error {
	return writeJSON(c, status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
			Block:   block,
		},
	})
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}
