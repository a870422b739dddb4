package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateGoldensEnv rewrites golden files instead of comparing against them
// when set to any non-empty value.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// GoldenPath returns testdata/<name>.golden relative to the package under test.
func GoldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// AssertGolden compares got with the golden file for name. The file ends with
// a single newline that is not part of the expected value.
func AssertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := GoldenPath(name)
	if os.Getenv(UpdateGoldensEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got+"\n"), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s (set %s=1 to create it): %v", path, UpdateGoldensEnv, err)
	}
	want := strings.TrimSuffix(string(data), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// StubConverter records the values it converts and tags the output so tests
// can tell converted values from raw ones.
type StubConverter struct {
	mu        sync.Mutex
	DisplayFn func(string) (string, error)
	StorageFn func(string) (string, error)
	Displayed []string
	Stored    []string
}

// ToDisplay wraps the value as `display(<value>)` unless DisplayFn is set.
func (s *StubConverter) ToDisplay(value string) (string, error) {
	s.mu.Lock()
	s.Displayed = append(s.Displayed, value)
	s.mu.Unlock()
	if s.DisplayFn != nil {
		return s.DisplayFn(value)
	}
	return "display(" + value + ")", nil
}

// ToStorage wraps the value as `storage(<value>)` unless StorageFn is set.
func (s *StubConverter) ToStorage(value string) (string, error) {
	s.mu.Lock()
	s.Stored = append(s.Stored, value)
	s.mu.Unlock()
	if s.StorageFn != nil {
		return s.StorageFn(value)
	}
	return "storage(" + value + ")", nil
}

// TemplateCall captures a single RenderTemplate invocation.
type TemplateCall struct {
	Name string
	Data any
}

// CaptureRenderer implements the template renderer seam by recording calls and
// returning Output for every render.
type CaptureRenderer struct {
	Output string
	Err    error
	Calls  []TemplateCall
}

func (c *CaptureRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return c.RenderTemplate(name, data, out...)
}

func (c *CaptureRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	c.Calls = append(c.Calls, TemplateCall{Name: name, Data: data})
	if c.Err != nil {
		return "", c.Err
	}
	for _, w := range out {
		if _, err := io.WriteString(w, c.Output); err != nil {
			return "", err
		}
	}
	return c.Output, nil
}

func (c *CaptureRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	return c.RenderTemplate(content, data, out...)
}

func (c *CaptureRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (c *CaptureRenderer) GlobalContext(any) error {
	return nil
}

// LastCall returns the most recent render call, failing the test when none
// was recorded.
func (c *CaptureRenderer) LastCall(t *testing.T) TemplateCall {
	t.Helper()
	if len(c.Calls) == 0 {
		t.Fatalf("expected template renderer to be called")
	}
	return c.Calls[len(c.Calls)-1]
}
