package adapters

import (
	"os"

	"github.com/morgansundqvist/musecase/internal/ports"
)

type LocalFileReader struct {
}

// NewLocalFileReader creates a new instance of LocalFileReader
func NewLocalFileReader() ports.FileReader {
	return &LocalFileReader{}
}

func (r *LocalFileReader) ReadFileContent(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}
