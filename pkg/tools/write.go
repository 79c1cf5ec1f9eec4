package tools

import (
	"context"
	"os"
)

type writeArgs struct {
	FilePath string `json:"file_path" jsonschema_description:"Path of the file to create or overwrite."`
	Content  string `json:"content" jsonschema_description:"Full file contents to write."`
}

type writeTool struct {
	opts Options
}

func (t *writeTool) name() string { return "Write" }

func (t *writeTool) description() string {
	return "Write contents to a file. Takes `file_path` and `content` arguments."
}

func (t *writeTool) schema() Schema { return GenerateSchema[writeArgs]() }

// execute creates or truncates the file and returns the content written.
// Parent directories must already exist.
func (t *writeTool) execute(_ context.Context, args arguments) (string, error) {
	path, content := args["file_path"], args["content"]
	t.opts.debugf("Write: file_path=%s, bytes=%d", path, len(content))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return content, nil
}
