package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// errNotUTF8 rejects files whose bytes would not survive the JSON result intact.
var errNotUTF8 = errors.New("file is not valid UTF-8")

type readArgs struct {
	FilePath string `json:"file_path" jsonschema_description:"Path of the file to read."`
}

type readTool struct {
	opts Options
}

func (t *readTool) name() string { return "Read" }

func (t *readTool) description() string {
	return "Read and return the contents of a file. Takes a `file_path` argument."
}

func (t *readTool) schema() Schema { return GenerateSchema[readArgs]() }

func (t *readTool) execute(_ context.Context, args arguments) (string, error) {
	path := args["file_path"]
	t.opts.debugf("Read: file_path=%s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, errNotUTF8)
	}
	t.opts.debugf("Read: %d bytes", len(data))
	return string(data), nil
}
