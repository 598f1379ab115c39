// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateFileExists(t *testing.T) {
	file := writeTemp(t, "invoice.xml", "<invoice/>")

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "valid file", path: file},
		{name: "empty path", path: "", wantErr: "document is required"},
		{name: "missing file", path: filepath.Join(t.TempDir(), "missing.xml"), wantErr: "does not exist"},
		{name: "directory", path: t.TempDir(), wantErr: "expected file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileExists("document", tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateFileExists() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateFileExists() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFolder(t *testing.T) {
	if err := NewPathValidator("out-dir", t.TempDir(), PathTypeFolder).Validate(); err != nil {
		t.Errorf("folder rejected: %v", err)
	}
	file := writeTemp(t, "a.txt", "a")
	if err := NewPathValidator("out-dir", file, PathTypeFolder).Validate(); err == nil {
		t.Error("file accepted as folder")
	}
	if err := NewPathValidator("input", file, PathTypeAny).Validate(); err != nil {
		t.Errorf("PathTypeAny rejected a file: %v", err)
	}
}

func TestValidateMultiple(t *testing.T) {
	a := writeTemp(t, "a.json", "{}")
	b := writeTemp(t, "b.json", "{}")

	if err := ValidateMultiple("reports", []string{a, b}, PathTypeFile); err != nil {
		t.Errorf("ValidateMultiple() error = %v", err)
	}
	err := ValidateMultiple("reports", []string{a, ""}, PathTypeFile)
	if err == nil || !strings.Contains(err.Error(), "index 1") {
		t.Errorf("ValidateMultiple() error = %v, want empty path at index 1", err)
	}
	err = ValidateMultiple("reports", []string{filepath.Join(t.TempDir(), "gone.json")}, PathTypeFile)
	if err == nil || !strings.Contains(err.Error(), "reports[0]") {
		t.Errorf("ValidateMultiple() error = %v, want reports[0]", err)
	}
}

func TestReadOptionalFile(t *testing.T) {
	got, err := ReadOptionalFile("schema", "")
	if err != nil || got != "" {
		t.Errorf("ReadOptionalFile(\"\") = %q, %v", got, err)
	}

	path := writeTemp(t, "schema.xsd", "<xs:schema/>")
	got, err = ReadOptionalFile("schema", path)
	if err != nil {
		t.Fatalf("ReadOptionalFile() error = %v", err)
	}
	if got != "<xs:schema/>" {
		t.Errorf("ReadOptionalFile() = %q", got)
	}

	if _, err := ReadOptionalFile("schema", t.TempDir()); err == nil {
		t.Error("ReadOptionalFile() accepted a directory")
	}
	if err := ValidateOptionalFile("schema", ""); err != nil {
		t.Errorf("ValidateOptionalFile(\"\") error = %v", err)
	}
}
