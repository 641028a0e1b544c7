//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/wardrobe/internal/catalog"
)

// Validate loads a catalog payload and reports the first configuration
// error, or a summary when it is valid.
func Validate(path string) error {
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	parts := 0
	for _, c := range cat.Categories() {
		parts += len(c.Parts)
	}
	fmt.Printf("%s: %d categories, %d parts\n", path, len(cat.Categories()), parts)
	return nil
}

// Stats prints Go lines of code and the size of the built-in catalog.
func Stats() error {
	var prodLines, testLines int

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path == "vendor" || path == ".git" || path == binaryDir || strings.HasPrefix(path, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasPrefix(path, "magefiles") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") {
			testLines += count
		} else {
			prodLines += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	cat, err := catalog.Builtin()
	if err != nil {
		return err
	}
	parts := 0
	for _, c := range cat.Categories() {
		parts += len(c.Parts)
	}

	record := map[string]int{
		"go_loc_prod":        prodLines,
		"go_loc_test":        testLines,
		"go_loc":             prodLines + testLines,
		"catalog_categories": len(cat.Categories()),
		"catalog_parts":      parts,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}
