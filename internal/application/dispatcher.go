package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/morgansundqvist/musecase/internal/domain"
	"github.com/morgansundqvist/musecase/internal/logger"
	"github.com/morgansundqvist/musecase/internal/metrics"
	"github.com/morgansundqvist/musecase/internal/ports"
)

// PreviewRows is the number of table rows echoed back for an uploaded file.
const PreviewRows = 5

// Dispatcher maps a use-case name and its inputs to a rendered result.
// It holds only immutable state and may be shared between requests.
type Dispatcher struct {
	client  ports.CompletionClient
	parser  ports.TableParser
	log     *logger.Logger
	entries map[string]entry
	order   []string
}

func NewDispatcher(client ports.CompletionClient, parser ports.TableParser, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	table := useCaseTable()
	d := &Dispatcher{
		client:  client,
		parser:  parser,
		log:     log,
		entries: make(map[string]entry, len(table)),
		order:   make([]string, 0, len(table)),
	}
	for _, e := range table {
		if _, dup := d.entries[e.useCase.Name]; dup {
			panic(fmt.Sprintf("duplicate use-case %q", e.useCase.Name))
		}
		d.entries[e.useCase.Name] = e
		d.order = append(d.order, e.useCase.Name)
	}
	return d
}

// UseCases returns the table in sidebar order.
func (d *Dispatcher) UseCases() []domain.UseCase {
	out := make([]domain.UseCase, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.entries[name].useCase)
	}
	return out
}

func (d *Dispatcher) Lookup(name string) (domain.UseCase, error) {
	e, ok := d.entries[name]
	if !ok {
		return domain.UseCase{}, &domain.UnknownUseCaseError{Name: name}
	}
	return e.useCase, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, name string, inputs map[string]string) (domain.RenderedResult, error) {
	e, ok := d.entries[name]
	if !ok {
		metrics.DispatchTotal.WithLabelValues("unknown", "unknown").Inc()
		d.log.Warn("dispatch to unknown use-case", "use_case", name)
		return domain.RenderedResult{}, &domain.UnknownUseCaseError{Name: name}
	}

	result := domain.RenderedResult{
		ID:       uuid.NewString(),
		UseCase:  name,
		Shape:    e.useCase.Output,
		Language: e.useCase.Language,
	}
	log := d.log.With("request_id", result.ID, "use_case", name)

	var err error
	if e.useCase.RoutesToLLM() {
		err = d.complete(ctx, e, inputs, &result)
	} else {
		err = d.visualize(inputs, &result)
	}
	if err != nil {
		metrics.DispatchTotal.WithLabelValues(name, statusOf(err)).Inc()
		log.Warn("dispatch failed", "error", err)
		return domain.RenderedResult{}, err
	}

	metrics.DispatchTotal.WithLabelValues(name, "success").Inc()
	log.Info("dispatch done", "shape", result.Shape)
	return result, nil
}

func (d *Dispatcher) complete(ctx context.Context, e entry, inputs map[string]string, result *domain.RenderedResult) error {
	req, err := e.compose(e.useCase, inputs)
	if err != nil {
		return err
	}
	text, err := d.client.Complete(ctx, req.UserContent, req.Instruction)
	if err != nil {
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) {
			return err
		}
		return &domain.UpstreamError{Err: err}
	}
	result.Text = text
	return nil
}

// visualize parses the uploaded table and, when a column is chosen, builds
// its histogram. No remote call is made.
func (d *Dispatcher) visualize(inputs map[string]string, result *domain.RenderedResult) error {
	content, ok := inputs[domain.InputFile]
	if !ok || content == "" {
		return &domain.ValidationError{Field: domain.InputFile, Reason: "a CSV file is required"}
	}
	table, err := d.parser.Parse(strings.NewReader(content))
	if err != nil {
		metrics.UploadParseFailures.Inc()
		return err
	}

	result.Columns = table.Columns
	result.Preview = table.Head(PreviewRows)

	column := strings.TrimSpace(inputs[domain.InputColumn])
	if column == "" {
		return nil
	}
	hist, err := domain.BuildHistogram(table, column)
	if err != nil {
		return err
	}
	result.Chart = hist
	return nil
}

func statusOf(err error) string {
	var (
		upErr    *domain.UpstreamError
		parseErr *domain.InputParseError
		valErr   *domain.ValidationError
	)
	switch {
	case errors.As(err, &upErr):
		return "upstream_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &valErr):
		return "invalid"
	default:
		return "error"
	}
}
