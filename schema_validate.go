package jsonschema

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Validate parses a JSON document from r and validates it against the schema.
// Malformed input returns *errors.ParseError.
func (s *Schema) Validate(r io.Reader) (errors.Report, error) {
	if s == nil || s.engine == nil {
		return errors.Report{}, errors.NotLoadedError{}
	}
	if r == nil {
		return errors.Report{}, fmt.Errorf("validate: nil reader")
	}
	v, err := jsontext.ParseReader(r, s.engine.parseOpts)
	if err != nil {
		return errors.Report{}, err
	}
	return s.engine.Validate(v)
}

// ValidateBytes parses data and validates it against the schema.
func (s *Schema) ValidateBytes(data []byte) (errors.Report, error) {
	if s == nil || s.engine == nil {
		return errors.Report{}, errors.NotLoadedError{}
	}
	v, err := jsontext.Parse(data, s.engine.parseOpts)
	if err != nil {
		return errors.Report{}, err
	}
	return s.engine.Validate(v)
}

// ValidateValue validates an already parsed value.
func (s *Schema) ValidateValue(v jsonvalue.Value) (errors.Report, error) {
	if s == nil || s.engine == nil {
		return errors.Report{}, errors.NotLoadedError{}
	}
	return s.engine.Validate(v)
}

// ValidateFSFile validates a JSON file from the provided filesystem.
func (s *Schema) ValidateFSFile(fsys fs.FS, path string) (errors.Report, error) {
	return s.validateFile(path, func(filePath string) (io.ReadCloser, error) {
		if fsys == nil {
			return nil, fmt.Errorf("nil fs")
		}
		return fsys.Open(filePath)
	})
}

// ValidateFile validates a JSON file against the schema.
func (s *Schema) ValidateFile(path string) (errors.Report, error) {
	return s.validateFile(path, func(filePath string) (io.ReadCloser, error) {
		return os.Open(filePath)
	})
}

func (s *Schema) validateFile(path string, openFile func(string) (io.ReadCloser, error)) (report errors.Report, err error) {
	if s == nil || s.engine == nil {
		return errors.Report{}, errors.NotLoadedError{}
	}
	f, err := openFile(path)
	if err != nil {
		return errors.Report{}, fmt.Errorf("open json file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close json file %s: %w", path, closeErr)
		}
	}()

	return s.Validate(f)
}
