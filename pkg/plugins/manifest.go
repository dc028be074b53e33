package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	// CurrentSDKAPIVersion is the current version of the plugin SDK API
	CurrentSDKAPIVersion = "1.0.0"

	// ManifestFileName is the manifest file looked up inside a plugin directory
	ManifestFileName = "plugin.yaml"
)

var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

var pluginIDRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// PluginType defines the category of plugin
type PluginType string

const (
	// PluginTypeCompiler marks plugins hooking the compile pipeline
	PluginTypeCompiler PluginType = "compiler"
	// PluginTypeAnalyzer marks read-only analysis plugins; they use the
	// same hook contract but promise not to replace the representation
	PluginTypeAnalyzer PluginType = "analyzer"
)

// Manifest describes plugin metadata
type Manifest struct {
	ID          string            `yaml:"id"`          // Unique ID (e.g., "trace-rewriter")
	Name        string            `yaml:"name"`        // Display name
	Version     string            `yaml:"version"`     // Semver
	APIVersion  string            `yaml:"api_version"` // SDK API version
	Description string            `yaml:"description"` // Short description
	Author      string            `yaml:"author"`      // Author name
	License     string            `yaml:"license"`     // License (e.g., MIT, Apache-2.0)
	Homepage    string            `yaml:"homepage"`    // Homepage URL
	Repository  string            `yaml:"repository"`  // Repository URL
	Type        PluginType        `yaml:"type"`        // Plugin type
	Bindings    []string          `yaml:"bindings"`    // Qualified binding type names the module declares
	Permissions []string          `yaml:"permissions"` // Required permissions
	Metadata    map[string]string `yaml:"metadata"`    // Additional metadata
}

// LoadManifest loads and parses a plugin manifest from a file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &manifest, nil
}

// LoadManifestFromDir loads a plugin manifest from a directory (looks for plugin.yaml)
func LoadManifestFromDir(dir string) (*Manifest, error) {
	return LoadManifest(filepath.Join(dir, ManifestFileName))
}

// SaveManifest saves a plugin manifest to a file
func SaveManifest(manifest *Manifest, path string) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ValidateManifest performs basic validation on a plugin manifest
func ValidateManifest(manifest *Manifest) []ValidationError {
	var errors []ValidationError

	// Required fields
	if manifest.ID == "" {
		errors = append(errors, ValidationError{
			Field:    "id",
			Message:  "Plugin ID is required",
			Severity: "error",
		})
	} else if !pluginIDRegex.MatchString(manifest.ID) {
		errors = append(errors, ValidationError{
			Field:    "id",
			Message:  "Plugin ID must be lowercase alphanumeric with hyphens (e.g., 'trace-rewriter')",
			Severity: "error",
		})
	}

	if manifest.Name == "" {
		errors = append(errors, ValidationError{
			Field:    "name",
			Message:  "Plugin name is required",
			Severity: "error",
		})
	}

	if manifest.Version == "" {
		errors = append(errors, ValidationError{
			Field:    "version",
			Message:  "Version is required",
			Severity: "error",
		})
	} else if !isValidSemver(manifest.Version) {
		errors = append(errors, ValidationError{
			Field:    "version",
			Message:  fmt.Sprintf("Invalid semver format: %s", manifest.Version),
			Severity: "error",
		})
	}

	if manifest.APIVersion == "" {
		errors = append(errors, ValidationError{
			Field:    "api_version",
			Message:  "API version is required",
			Severity: "error",
		})
	} else if !isValidSemver(manifest.APIVersion) {
		errors = append(errors, ValidationError{
			Field:    "api_version",
			Message:  fmt.Sprintf("Invalid semver format: %s", manifest.APIVersion),
			Severity: "error",
		})
	}

	switch manifest.Type {
	case PluginTypeCompiler, PluginTypeAnalyzer:
	case "":
		errors = append(errors, ValidationError{
			Field:    "type",
			Message:  "Plugin type is required",
			Severity: "error",
		})
	default:
		errors = append(errors, ValidationError{
			Field:    "type",
			Message:  fmt.Sprintf("Invalid plugin type: %s (supported: 'compiler', 'analyzer')", manifest.Type),
			Severity: "error",
		})
	}

	if len(manifest.Bindings) == 0 {
		errors = append(errors, ValidationError{
			Field:    "bindings",
			Message:  "At least one binding type name is required",
			Severity: "warning",
		})
	}

	return errors
}

// isValidSemver checks if a version string follows semantic versioning
func isValidSemver(version string) bool {
	return semverRegex.MatchString(version)
}

// IsCompatibleAPIVersion checks if a plugin's API version is compatible with the current SDK
func IsCompatibleAPIVersion(pluginAPIVersion, sdkAPIVersion string) bool {
	// Major version compatibility only: v1.x.x works with any v1.y.z SDK.
	pluginMajor := extractMajorVersion(pluginAPIVersion)
	sdkMajor := extractMajorVersion(sdkAPIVersion)

	return pluginMajor == sdkMajor
}

func extractMajorVersion(version string) string {
	matches := semverRegex.FindStringSubmatch(version)
	if len(matches) > 1 {
		return matches[1]
	}
	return "0"
}
