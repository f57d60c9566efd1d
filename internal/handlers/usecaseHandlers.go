package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/morgansundqvist/musecase/internal/application"
	"github.com/morgansundqvist/musecase/internal/domain"
	"github.com/morgansundqvist/musecase/internal/ports"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type UseCaseHandler struct {
	Dispatcher ports.UseCaseDispatcher
	Charts     ports.ChartRenderer
	Branding   []byte
	Model      string
}

func NewUseCaseHandler(dispatcher ports.UseCaseDispatcher, charts ports.ChartRenderer, branding []byte, model string) *UseCaseHandler {
	return &UseCaseHandler{Dispatcher: dispatcher, Charts: charts, Branding: branding, Model: model}
}

// Mount registers the page and the JSON API on router.
func (h *UseCaseHandler) Mount(router fiber.Router) {
	router.Get("/", h.Index)
	router.Get("/branding.png", h.BrandingImage)

	api := router.Group("/api")
	api.Get("/usecases", h.ListUseCases)
	api.Get("/schema", h.DispatchSchema)
	api.Post("/dispatch/:name", h.Dispatch)
	api.Post("/visualize", h.Visualize)
	api.Post("/visualize/chart.png", h.VisualizeChart)
}

type pageData struct {
	UseCases    []domain.UseCase
	Active      domain.UseCase
	HasBranding bool
	Model       string
}

func (h *UseCaseHandler) Index(c *fiber.Ctx) error {
	useCases := h.Dispatcher.UseCases()
	active := useCases[0]
	if name := c.Query("usecase"); name != "" {
		uc, err := h.Dispatcher.Lookup(name)
		if err != nil {
			return h.fail(c, err)
		}
		active = uc
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{
		UseCases:    useCases,
		Active:      active,
		HasBranding: len(h.Branding) > 0,
		Model:       h.Model,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to render page",
			"details": err.Error(),
		})
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *UseCaseHandler) BrandingImage(c *fiber.Ctx) error {
	if len(h.Branding) == 0 {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Type("png")
	return c.Send(h.Branding)
}

func (h *UseCaseHandler) ListUseCases(c *fiber.Ctx) error {
	return c.JSON(h.Dispatcher.UseCases())
}

func (h *UseCaseHandler) DispatchSchema(c *fiber.Ctx) error {
	return c.JSON(domain.GenerateSchema[domain.DispatchRequest]())
}

func (h *UseCaseHandler) Dispatch(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid use-case name",
			"details": err.Error(),
		})
	}

	req := new(domain.DispatchRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "cannot parse JSON",
			"details": err.Error(),
		})
	}

	result, err := h.Dispatcher.Dispatch(c.UserContext(), name, req.Inputs)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// Visualize returns the column set and a preview of the uploaded table, plus
// the histogram when a column is posted alongside the file.
func (h *UseCaseHandler) Visualize(c *fiber.Ctx) error {
	result, err := h.visualize(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *UseCaseHandler) VisualizeChart(c *fiber.Ctx) error {
	if c.FormValue(domain.InputColumn) == "" {
		return h.fail(c, &domain.ValidationError{Field: domain.InputColumn, Reason: "a column must be selected"})
	}
	result, err := h.visualize(c)
	if err != nil {
		return h.fail(c, err)
	}

	var buf bytes.Buffer
	if err := h.Charts.RenderPNG(&buf, result.Chart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to render chart",
			"details": err.Error(),
		})
	}
	c.Type("png")
	return c.Send(buf.Bytes())
}

func (h *UseCaseHandler) visualize(c *fiber.Ctx) (domain.RenderedResult, error) {
	fh, err := c.FormFile(domain.InputFile)
	if err != nil {
		return domain.RenderedResult{}, &domain.ValidationError{Field: domain.InputFile, Reason: "a CSV file upload is required"}
	}
	f, err := fh.Open()
	if err != nil {
		return domain.RenderedResult{}, &domain.InputParseError{Err: err}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.RenderedResult{}, &domain.InputParseError{Err: err}
	}

	return h.Dispatcher.Dispatch(c.UserContext(), application.DataVisualization, map[string]string{
		domain.InputFile:   string(content),
		domain.InputColumn: c.FormValue(domain.InputColumn),
	})
}

// fail renders err as the inline failure message shown next to the form.
func (h *UseCaseHandler) fail(c *fiber.Ctx, err error) error {
	var (
		unknown  *domain.UnknownUseCaseError
		valErr   *domain.ValidationError
		parseErr *domain.InputParseError
		upErr    *domain.UpstreamError
	)
	status, msg := fiber.StatusInternalServerError, "request failed"
	switch {
	case errors.As(err, &unknown):
		status, msg = fiber.StatusNotFound, "unknown use-case"
	case errors.As(err, &valErr):
		status, msg = fiber.StatusBadRequest, "invalid input"
	case errors.As(err, &parseErr):
		status, msg = fiber.StatusBadRequest, "cannot parse uploaded file"
	case errors.As(err, &upErr):
		status, msg = fiber.StatusBadGateway, "the language model request failed"
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   msg,
		"details": err.Error(),
	})
}
