package ports

type FileReader interface {
	ReadFileContent(filePath string) ([]byte, error)
}
