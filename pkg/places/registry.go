package places

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// Registry is a mutex-guarded code book indexed by Belfiore code and by
// normalized place name. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	byCode   map[string]*Place
	byName   map[string]*Place
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, path string)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]*Place),
		byName: make(map[string]*Place),
	}
}

// NewRegistryWithDirectory creates a registry and loads every YAML code book
// from the directory.
func NewRegistryWithDirectory(dir string) (*Registry, error) {
	registry := NewRegistry()
	if err := registry.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return registry, nil
}

// Register adds a place, replacing any previous entry with the same code.
func (r *Registry) Register(place *Place) error {
	if place == nil {
		return fmt.Errorf("place cannot be nil")
	}
	if err := place.Validate(); err != nil {
		return fmt.Errorf("invalid place: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.byCode[place.Code]; ok {
		delete(r.byName, NormalizeName(previous.Name))
	}
	r.byCode[place.Code] = place
	r.byName[NormalizeName(place.Name)] = place
	return nil
}

// Unregister removes a place by code.
func (r *Registry) Unregister(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	place, ok := r.byCode[code]
	if !ok {
		return fmt.Errorf("place %q not found", code)
	}
	delete(r.byCode, code)
	delete(r.byName, NormalizeName(place.Name))
	return nil
}

// Get returns a place by its Belfiore code.
func (r *Registry) Get(code string) (*Place, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	place, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return place, ok
}

// Lookup returns a place by name. Matching is case- and accent-insensitive.
func (r *Registry) Lookup(name string) (*Place, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	place, ok := r.byName[NormalizeName(name)]
	return place, ok
}

// List returns all registered places sorted by code.
func (r *Registry) List() []*Place {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Place, 0, len(r.byCode))
	for _, place := range r.byCode {
		list = append(list, place)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list
}

// ListByProvince returns the places of a province, sorted by code.
func (r *Registry) ListByProvince(province string) []*Place {
	provinceUpper := strings.ToUpper(strings.TrimSpace(province))

	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*Place
	for _, place := range r.byCode {
		if strings.ToUpper(place.Province) == provinceUpper {
			list = append(list, place)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list
}

// Count returns the number of registered places.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}

// LoadDirectory loads every YAML code book from a directory. A missing
// directory loads nothing; a malformed file is reported without aborting the
// remaining files.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, name)); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading code books: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads a single YAML code book.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var book codeBook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	for i := range book.Places {
		if err := r.Register(&book.Places[i]); err != nil {
			return fmt.Errorf("registering place %q: %w", book.Places[i].Code, err)
		}
	}
	return nil
}

// Reload rebuilds the registry from the configured directory. The rebuild is
// staged in fresh maps and swapped in under one lock, so concurrent readers
// never observe a partially loaded code book.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	staging := NewRegistry()
	err := staging.LoadDirectory(r.dir)

	r.mu.Lock()
	r.byCode = staging.byCode
	r.byName = staging.byName
	r.mu.Unlock()

	return err
}

// SetOnChange sets a callback invoked after the registry reacts to a file
// system event while watching.
func (r *Registry) SetOnChange(fn func(event string, path string)) {
	r.onChange = fn
}

// Watch starts watching the configured directory for code book changes.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if err := watcher.Add(r.dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}
	return nil
}

// StopWatch stops the directory watcher.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

func (r *Registry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create,
				event.Op&fsnotify.Write == fsnotify.Write:
				if err := r.LoadFile(event.Name); err != nil {
					continue
				}
				r.notify("load", event.Name)

			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				// A removed file may have contributed entries still present in
				// other files; rebuild from the directory.
				if err := r.Reload(); err != nil {
					continue
				}
				r.notify("reload", event.Name)
			}

		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *Registry) notify(event string, path string) {
	if r.onChange != nil {
		r.onChange(event, path)
	}
}
