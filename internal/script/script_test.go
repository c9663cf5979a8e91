package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindAndIndex(t *testing.T) {
	records := []Record{{ID: "a", Name: "foo.sh"}, {ID: "b", Name: "bar.sh"}}

	if i := Index(records, "b"); i != 1 {
		t.Errorf("Index(b) = %d", i)
	}
	if i := Index(records, "zzz"); i != -1 {
		t.Errorf("Index(zzz) = %d", i)
	}
	if r, ok := Find(records, "a"); !ok || r.Name != "foo.sh" {
		t.Errorf("Find(a) = %+v, %v", r, ok)
	}
	if _, ok := Find(nil, "a"); ok {
		t.Error("Find on nil should miss")
	}
}

func TestSameVersionIsStringEquality(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0.0", "1.0.0", true},
		{"1.0.0", "2.0.0", false},
		{"1.0", "1.0.0", false},
		{"2.0.0", "1.0.0", false},
	}
	for _, tt := range tests {
		got := Record{Version: tt.a}.SameVersion(Record{Version: tt.b})
		if got != tt.want {
			t.Errorf("SameVersion(%q, %q) = %v", tt.a, tt.b, got)
		}
	}
}

func TestErrorsAreMatchable(t *testing.T) {
	cause := errors.New("connection refused")
	errs := []error{
		fmt.Errorf("wrapped: %w", &TransportError{URL: "https://x", Err: cause}),
		fmt.Errorf("wrapped: %w", &FormatError{Source: "catalog", Problems: []string{"bad"}}),
		fmt.Errorf("wrapped: %w", &IntegrityError{Path: "foo.sh", Expected: "aa", Actual: "bb"}),
		fmt.Errorf("wrapped: %w", &SelectionError{Index: 4, Count: 2}),
		fmt.Errorf("wrapped: %w", &ConfigurationError{Key: "home", Path: "/nope"}),
	}

	var terr *TransportError
	var ferr *FormatError
	var ierr *IntegrityError
	var serr *SelectionError
	var cerr *ConfigurationError

	if !errors.As(errs[0], &terr) || !errors.Is(errs[0], cause) {
		t.Error("TransportError not matchable")
	}
	if !errors.As(errs[1], &ferr) {
		t.Error("FormatError not matchable")
	}
	if !errors.As(errs[2], &ierr) {
		t.Error("IntegrityError not matchable")
	}
	if !errors.As(errs[3], &serr) {
		t.Error("SelectionError not matchable")
	}
	if !errors.As(errs[4], &cerr) {
		t.Error("ConfigurationError not matchable")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want []string
	}{
		{&TransportError{URL: "https://x/a", Status: 503}, []string{"https://x/a", "HTTP 503"}},
		{&TransportError{URL: "https://x/a", Err: errors.New("refused")}, []string{"refused"}},
		{&FormatError{Source: "catalog", Problems: []string{"one", "two"}}, []string{"malformed catalog", "one", "two"}},
		{&FormatError{Source: "state", Err: errors.New("eof")}, []string{"malformed state", "eof"}},
		{&IntegrityError{Path: "foo.sh", Expected: "aa", Actual: "bb"}, []string{"hash mismatch", "foo.sh", "aa", "bb"}},
		{&SelectionError{Index: 4, Count: 2}, []string{"#5", "between 1 and 2"}},
		{&SelectionError{Index: 0, Count: 0}, []string{"catalog is empty"}},
		{&ConfigurationError{Key: "home", Path: "/nope", Err: errors.New("directory does not exist")}, []string{"home", "/nope", "does not exist"}},
	}

	for _, tt := range tests {
		msg := tt.err.Error()
		for _, w := range tt.want {
			if !strings.Contains(msg, w) {
				t.Errorf("%T message %q missing %q", tt.err, msg, w)
			}
		}
	}
}

func TestRegister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool.py")
	content := []byte("print('hi')\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Register(path, "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if r.Name != "tool.py" {
		t.Errorf("name = %q", r.Name)
	}
	if r.Version != DefaultVersion {
		t.Errorf("version = %q", r.Version)
	}
	if r.Hash != HashBytes(content) {
		t.Errorf("hash = %q", r.Hash)
	}
	if len(r.ID) != 36 {
		t.Errorf("id = %q, want a uuid", r.ID)
	}

	again, err := Register(path, "2.0")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID == r.ID {
		t.Error("ids should be unique per registration")
	}
	if again.Version != "2.0" {
		t.Errorf("version = %q", again.Version)
	}
}

func TestRegisterMissingFile(t *testing.T) {
	if _, err := Register(filepath.Join(t.TempDir(), "nope.sh"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHashBytesKnownValue(t *testing.T) {
	const emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashBytes(nil); got != emptySHA {
		t.Errorf("HashBytes(nil) = %s", got)
	}
}
