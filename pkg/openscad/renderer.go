// Package openscad renders OpenSCAD sources to STL with the openscad binary.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNotInstalled is returned when the openscad binary is not on PATH
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Matches: use <file.scad>, include <./lib/file.scad>
var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
	binary  string
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
		binary:  "openscad",
	}
}

// IsSource reports whether path looks like an OpenSCAD source file
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile. The render is killed when ctx is done.
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, r.binary, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("render %s: %w", scadFile, ctxErr)
		}
		var detail strings.Builder
		if stderr.Len() > 0 {
			detail.WriteString("\nstderr: ")
			detail.WriteString(strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			detail.WriteString("\nstdout: ")
			detail.WriteString(strings.TrimSpace(stdout.String()))
		}
		return fmt.Errorf("failed to render %s: %w%s", scadFile, err, detail.String())
	}

	return nil
}

// ResolveDependencies returns scadFile and every file it reaches through
// use/include statements, as absolute paths in discovery order.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	if err := r.resolve(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) resolve(scadFile string, visited map[string]bool, deps *[]string) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	fileDeps, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}
	for _, dep := range fileDeps {
		if err := r.resolve(dep, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// parseDependencies lists the use/include targets of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scadDir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyRegex.FindStringSubmatch(line); len(m) > 1 {
			deps = append(deps, r.resolveDepPath(m[1], scadDir))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath resolves a dependency against the including file's
// directory, then the work directory
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}

	candidate := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(candidate); err == nil {
		return filepath.Clean(candidate)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
