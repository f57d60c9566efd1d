package ports

import (
	"io"

	"github.com/morgansundqvist/musecase/internal/domain"
)

type TableParser interface {
	Parse(r io.Reader) (*domain.Table, error)
}

type ChartRenderer interface {
	RenderPNG(w io.Writer, h *domain.Histogram) error
}
