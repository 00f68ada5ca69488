package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"twittertext/internal/domain"
	"twittertext/internal/usecases"
	"twittertext/pkg/log"
	"twittertext/pkg/twittertext"
	"twittertext/templates/components"
	"twittertext/templates/pages"
	"twittertext/templates/partials"
)

const requestTimeout = 5 * time.Second

// Handlers contains the HTTP handlers for the web application.
type Handlers struct {
	analyze  *usecases.AnalyzeTextUseCase
	extract  *usecases.ExtractEntitiesUseCase
	validate *usecases.ValidateTextUseCase
	configs  usecases.ConfigSource
	metrics  *Metrics
	logger   *log.Logger
}

func NewHandlers(
	analyze *usecases.AnalyzeTextUseCase,
	extract *usecases.ExtractEntitiesUseCase,
	validate *usecases.ValidateTextUseCase,
	configs usecases.ConfigSource,
	metrics *Metrics,
	logger *log.Logger,
) *Handlers {
	return &Handlers{
		analyze:  analyze,
		extract:  extract,
		validate: validate,
		configs:  configs,
		metrics:  metrics,
		logger:   logger.Named("web"),
	}
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// Extract handles POST /api/extract.
func (h *Handlers) Extract(c *fiber.Ctx) error {
	var req domain.ExtractRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	req.Types = splitList(append(req.Types, c.Query("types")))

	ctx, cancel := requestContext(c)
	defer cancel()

	ents, err := h.extract.Execute(ctx, req)
	if err != nil {
		h.logger.WarnCtx(ctx, "extract rejected", "error", err)
		return writeError(c, err)
	}
	h.metrics.observeEntities(ents)
	return c.JSON(fiber.Map{"entities": ents})
}

// Parse handles POST /api/parse.
func (h *Handlers) Parse(c *fiber.Ctx) error {
	var req domain.ParseRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if req.Config == "" {
		req.Config = c.Query("config")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	analysis, err := h.analyze.Execute(ctx, req)
	if err != nil {
		h.logger.WarnCtx(ctx, "parse rejected", "config", req.Config, "error", err)
		return writeError(c, err)
	}
	h.metrics.observeAnalysis(analysis)
	return c.JSON(analysis)
}

// Validate handles POST /api/validate.
func (h *Handlers) Validate(c *fiber.Ctx) error {
	var req domain.ValidateRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	v, err := h.validate.Execute(ctx, req)
	if err != nil {
		h.logger.WarnCtx(ctx, "validate rejected", "kind", req.Kind, "error", err)
		return writeError(c, err)
	}
	return c.JSON(v)
}

type configEntry struct {
	Name    string                     `json:"name"`
	Default bool                       `json:"default"`
	Config  *twittertext.Configuration `json:"config"`
}

// Configs handles GET /api/configs.
func (h *Handlers) Configs(c *fiber.Ctx) error {
	def, _, _ := h.configs.Config("")
	names := h.configs.Names()
	out := make([]configEntry, 0, len(names))
	for _, name := range names {
		if _, cfg, ok := h.configs.Config(name); ok {
			out = append(out, configEntry{Name: name, Default: name == def, Config: cfg})
		}
	}
	return c.JSON(fiber.Map{"configs": out, "validations": usecases.ValidationKinds})
}

// Health handles GET /healthz.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Home renders the playground.
func (h *Handlers) Home(c *fiber.Ctx) error {
	def, _, _ := h.configs.Config("")
	return render(c, pages.Home(h.configs.Names(), def))
}

// Playground handles the HTMX form post and renders the result fragment.
func (h *Handlers) Playground(c *fiber.Ctx) error {
	req := domain.ParseRequest{
		Text:        c.FormValue("text"),
		Config:      c.FormValue("config"),
		ExtractURLs: c.FormValue("extract_urls") == "true",
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	analysis, err := h.analyze.Execute(ctx, req)
	if err != nil {
		status, _ := statusFor(err)
		c.Status(status)
		return render(c, components.ErrorMessage(friendlyError(err)))
	}
	h.metrics.observeAnalysis(analysis)
	return render(c, partials.Result(req.Text, analysis))
}
