// Package loader reads game content into Go structs. Two authoring
// formats are supported: a directory of JSON files, and Lua world files
// executed in a sandboxed VM that is discarded after loading.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cfirth/fable/engine/world"
)

// Load reads a game directory, validates cross-references, and returns
// the indexed world. The format is detected from the directory contents:
// a game.json selects the JSON layout, .lua files select the Lua layout.
func Load(dir string) (*world.World, error) {
	if _, err := os.Stat(filepath.Join(dir, "game.json")); err == nil {
		return LoadJSON(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			return LoadLua(dir)
		}
	}
	return nil, fmt.Errorf("no game.json or .lua files found in %s", dir)
}

// LoadJSON reads the JSON layout: game.json at the top plus rooms/,
// objects/, npcs/, verbs/ and events/ subdirectories of JSON files, each
// holding either a single definition or an array of them.
func LoadJSON(dir string) (*world.World, error) {
	content := &world.Content{}

	configPath := filepath.Join(dir, "game.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading game config: %w", err)
	}
	if err := json.Unmarshal(data, &content.Config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}

	if err := loadItems(dir, "rooms", &content.Rooms); err != nil {
		return nil, err
	}
	if err := loadItems(dir, "objects", &content.Objects); err != nil {
		return nil, err
	}
	if err := loadItems(dir, "npcs", &content.NPCs); err != nil {
		return nil, err
	}
	if err := loadItems(dir, "verbs", &content.Verbs); err != nil {
		return nil, err
	}
	if err := loadItems(dir, "events", &content.Events); err != nil {
		return nil, err
	}

	if err := Validate(content); err != nil {
		return nil, err
	}
	return world.New(content), nil
}

// loadItems reads every JSON file in a subdirectory, sorted by file name
// so declaration order is stable across platforms. A missing subdirectory
// just means no items of that kind.
func loadItems[T any](dir, subdir string, out *[]T) error {
	path := filepath.Join(dir, subdir)
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		filePath := filepath.Join(path, name)
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filePath, err)
		}

		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				return fmt.Errorf("parsing %s: %w", filePath, err)
			}
			*out = append(*out, items...)
			continue
		}

		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("parsing %s: %w", filePath, err)
		}
		*out = append(*out, item)
	}
	return nil
}
