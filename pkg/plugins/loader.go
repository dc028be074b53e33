package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DirLoader loads plugin modules from filesystem directories. Each
// plugin directory carries a plugin.yaml manifest; the implementation
// itself is resolved through the link-time registry under the manifest
// ID, so a directory is only loadable when its implementation module is
// compiled into the host process.
type DirLoader struct {
	pluginDirs []string
	log        *logrus.Logger
}

// NewDirLoader creates a new directory loader
func NewDirLoader(dirs []string, log *logrus.Logger) *DirLoader {
	if log == nil {
		log = logrus.New()
	}

	return &DirLoader{
		pluginDirs: dirs,
		log:        log,
	}
}

// DiscoverModules scans the configured plugin directories and loads
// every plugin directory found. Directories that fail to load are
// logged and skipped.
func (l *DirLoader) DiscoverModules(ctx context.Context) ([]Module, error) {
	var found []Module

	for _, dir := range l.pluginDirs {
		if err := ctx.Err(); err != nil {
			return found, err
		}

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			l.log.Debugf("Plugin directory does not exist: %s", dir)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			l.log.Warnf("Failed to read plugin directory %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			pluginDir := filepath.Join(dir, entry.Name())
			module, err := l.Load(pluginDir)
			if err != nil {
				l.log.Warnf("Failed to load plugin from %s: %v", pluginDir, err)
				continue
			}

			found = append(found, module)
		}
	}

	return found, nil
}

// Load loads the plugin module described by the manifest in dir
func (l *DirLoader) Load(dir string) (Module, error) {
	manifest, err := LoadManifestFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	if validationErrors := manifestErrors(ValidateManifest(manifest)); len(validationErrors) > 0 {
		return nil, fmt.Errorf("manifest validation failed: %v", validationErrors)
	}

	if !IsCompatibleAPIVersion(manifest.APIVersion, CurrentSDKAPIVersion) {
		return nil, fmt.Errorf("incompatible API version: plugin requires %s, SDK is %s",
			manifest.APIVersion, CurrentSDKAPIVersion)
	}

	module, ok := LookupModule(manifest.ID)
	if !ok {
		return nil, fmt.Errorf("%w: no implementation registered for plugin %s", ErrModuleNotFound, manifest.ID)
	}

	l.log.Infof("Loaded plugin: %s v%s (type: %s)", manifest.Name, manifest.Version, manifest.Type)

	return module, nil
}

// manifestErrors filters validation results down to hard errors
func manifestErrors(results []ValidationError) []ValidationError {
	var errors []ValidationError
	for _, r := range results {
		if r.Severity != "warning" {
			errors = append(errors, r)
		}
	}
	return errors
}
