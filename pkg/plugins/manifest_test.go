package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadManifest tests loading a valid manifest from a file
func TestLoadManifest(t *testing.T) {
	tmpDir := t.TempDir()
	manifestPath := filepath.Join(tmpDir, ManifestFileName)

	manifest := &Manifest{
		ID:          "trace-rewriter",
		Name:        "Trace Rewriter",
		Version:     "1.0.0",
		APIVersion:  "1.0.0",
		Type:        PluginTypeCompiler,
		Description: "Injects trace calls into every function",
		Author:      "Test Author",
		License:     "MIT",
		Bindings:    []string{"acme.plugins.TraceBinding"},
		Metadata:    map[string]string{"key": "value"},
	}

	err := SaveManifest(manifest, manifestPath)
	require.NoError(t, err)

	loaded, err := LoadManifest(manifestPath)
	assert.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "trace-rewriter", loaded.ID)
	assert.Equal(t, "Trace Rewriter", loaded.Name)
	assert.Equal(t, "1.0.0", loaded.Version)
	assert.Equal(t, PluginTypeCompiler, loaded.Type)
	assert.Equal(t, []string{"acme.plugins.TraceBinding"}, loaded.Bindings)
	assert.Equal(t, "value", loaded.Metadata["key"])
}

// TestLoadManifest_NonexistentFile tests loading from a non-existent file
func TestLoadManifest_NonexistentFile(t *testing.T) {
	loaded, err := LoadManifest("/nonexistent/path/plugin.yaml")
	assert.Error(t, err)
	assert.Nil(t, loaded)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

// TestLoadManifest_InvalidYAML tests loading invalid YAML content
func TestLoadManifest_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	manifestPath := filepath.Join(tmpDir, ManifestFileName)

	err := os.WriteFile(manifestPath, []byte("id: [unclosed"), 0644)
	require.NoError(t, err)

	loaded, err := LoadManifest(manifestPath)
	assert.Error(t, err)
	assert.Nil(t, loaded)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

// TestLoadManifestFromDir tests directory-based lookup of plugin.yaml
func TestLoadManifestFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := validManifest()
	require.NoError(t, SaveManifest(manifest, filepath.Join(tmpDir, ManifestFileName)))

	loaded, err := LoadManifestFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, manifest.ID, loaded.ID)
}

// TestValidateManifest_Valid tests that a complete manifest passes
func TestValidateManifest_Valid(t *testing.T) {
	errors := ValidateManifest(validManifest())
	assert.Empty(t, errors)
}

// TestValidateManifest_MissingFields tests required-field validation
func TestValidateManifest_MissingFields(t *testing.T) {
	errors := ValidateManifest(&Manifest{})

	fields := make(map[string]bool)
	for _, e := range errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["id"])
	assert.True(t, fields["name"])
	assert.True(t, fields["version"])
	assert.True(t, fields["api_version"])
	assert.True(t, fields["type"])
}

// TestValidateManifest_InvalidID tests plugin ID format validation
func TestValidateManifest_InvalidID(t *testing.T) {
	manifest := validManifest()
	manifest.ID = "Not_A_Valid_ID"

	errors := ValidateManifest(manifest)
	require.NotEmpty(t, errors)
	assert.Equal(t, "id", errors[0].Field)
}

// TestValidateManifest_InvalidSemver tests version format validation
func TestValidateManifest_InvalidSemver(t *testing.T) {
	tests := []struct {
		name    string
		version string
		valid   bool
	}{
		{"plain semver", "1.2.3", true},
		{"v prefix", "v1.2.3", true},
		{"prerelease", "1.2.3-beta.1", true},
		{"build metadata", "1.2.3+build.5", true},
		{"two components", "1.2", false},
		{"garbage", "latest", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest := validManifest()
			manifest.Version = tt.version

			errors := ValidateManifest(manifest)
			if tt.valid {
				assert.Empty(t, errors)
			} else {
				require.NotEmpty(t, errors)
				assert.Equal(t, "version", errors[0].Field)
			}
		})
	}
}

// TestValidateManifest_UnknownType tests plugin type validation
func TestValidateManifest_UnknownType(t *testing.T) {
	manifest := validManifest()
	manifest.Type = PluginType("language")

	errors := ValidateManifest(manifest)
	require.NotEmpty(t, errors)
	assert.Equal(t, "type", errors[0].Field)
}

// TestValidateManifest_NoBindings tests that missing bindings is only a warning
func TestValidateManifest_NoBindings(t *testing.T) {
	manifest := validManifest()
	manifest.Bindings = nil

	errors := ValidateManifest(manifest)
	require.Len(t, errors, 1)
	assert.Equal(t, "bindings", errors[0].Field)
	assert.Equal(t, "warning", errors[0].Severity)
}

// TestIsCompatibleAPIVersion tests API version compatibility checking
func TestIsCompatibleAPIVersion(t *testing.T) {
	tests := []struct {
		name             string
		pluginAPIVersion string
		sdkAPIVersion    string
		compatible       bool
	}{
		{"same version", "1.0.0", "1.0.0", true},
		{"same major", "1.2.3", "1.9.0", true},
		{"v prefix", "v1.0.0", "1.0.0", true},
		{"different major", "2.0.0", "1.0.0", false},
		{"unparseable plugin version", "latest", "1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsCompatibleAPIVersion(tt.pluginAPIVersion, tt.sdkAPIVersion)
			assert.Equal(t, tt.compatible, result)
		})
	}
}

func validManifest() *Manifest {
	return &Manifest{
		ID:         "trace-rewriter",
		Name:       "Trace Rewriter",
		Version:    "1.0.0",
		APIVersion: CurrentSDKAPIVersion,
		Type:       PluginTypeCompiler,
		Bindings:   []string{"acme.plugins.TraceBinding"},
	}
}
