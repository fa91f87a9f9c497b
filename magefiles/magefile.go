//go:build mage

// Package main contains Mage build targets for cognemail developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "cognemail"
	cmdPkg  = "./cmd/cognemail"
)

// sampleConfig is written by Init when no config file exists.
const sampleConfig = `search:
  engine: google
  language: en
  region: in
  safe: active
  timeout: 30s
llm:
  model: llama3-8b-8192
  timeout: 60s
filter:
  extra_terms: []
`

// Init creates the secrets directory and a sample cognemail.yaml.
func Init() error {
	if err := os.MkdirAll(".secrets", 0o700); err != nil {
		return fmt.Errorf("creating .secrets: %w", err)
	}
	fmt.Println("   .secrets/ (add serpapi-api-key and groq-api-key files)")

	if _, err := os.Stat("cognemail.yaml"); err == nil {
		fmt.Println("   cognemail.yaml exists, leaving it alone")
		return nil
	}
	if err := os.WriteFile("cognemail.yaml", []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing cognemail.yaml: %w", err)
	}
	fmt.Println("   cognemail.yaml")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs lint and tests.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Find builds the CLI and looks up one entity.
func Find(entity string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "find", entity)
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				total++
			}
		}
		return sc.Err()
	})
	return total, err
}
