package jsonschema_test

import (
	"fmt"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/jacoelho/jsonschema"
)

func TestSchemaValidateConcurrent(t *testing.T) {
	fsys := fstest.MapFS{
		"schema.json": &fstest.MapFile{Data: []byte(`{
  "type": "object",
  "properties": {
    "items": {"type": "array", "items": {"$ref": "#/$defs/item"}}
  },
  "$defs": {"item": {"type": "integer", "maximum": 100}}
}`)},
	}
	schema, err := jsonschema.Load(fsys, "schema.json")
	if err != nil {
		t.Fatalf("Load schema: %v", err)
	}

	const goroutines = 8
	const iterations = 25

	errCh := make(chan error, goroutines*iterations)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range goroutines {
		go func() {
			defer wg.Done()
			for j := range iterations {
				bad := (i+j)%2 == 0
				doc := `{"items":[1,2,3]}`
				if bad {
					doc = fmt.Sprintf(`{"items":[1,%d,"x"]}`, 101+j)
				}
				report, err := schema.ValidateBytes([]byte(doc))
				if err != nil {
					errCh <- err
					return
				}
				if want := map[bool]int{false: 0, true: 2}[bad]; report.Len() != want {
					errCh <- fmt.Errorf("doc %s: %d findings, want %d", doc, report.Len(), want)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("concurrent Validate error: %v", err)
	}
}
