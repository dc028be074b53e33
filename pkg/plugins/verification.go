package plugins

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Verifier checks that a plugin directory is safe to hand to the
// compiler: the manifest parses and validates, the declared SDK API
// version is compatible, the requested permissions are allowed, and an
// implementation module is resolvable for the manifest ID.
type Verifier struct {
	allowedPermissions map[string]bool
	logger             *logrus.Logger
}

// NewVerifier creates a new plugin verifier
func NewVerifier(logger *logrus.Logger) *Verifier {
	if logger == nil {
		logger = logrus.New()
	}

	// Default allowed permissions
	allowedPerms := map[string]bool{
		"filesystem:read":  true,
		"filesystem:write": true,
		"env:read":         true,
		"program:rewrite":  true,
		"artifacts:read":   true,
	}

	return &Verifier{
		allowedPermissions: allowedPerms,
		logger:             logger,
	}
}

// VerificationResult contains the complete verification outcome
type VerificationResult struct {
	PluginDir        string
	PluginID         string
	Valid            bool
	ManifestErrors   []ValidationError
	PermissionIssues []ValidationError
	Resolvable       bool
	Reason           string
	StartedAt        time.Time
	CompletedAt      time.Time
	ProcessingTime   time.Duration
}

// VerifyDir verifies the plugin in dir and returns the outcome. The
// returned error reports verification machinery failures only; a
// plugin failing verification is expressed through the result.
func (v *Verifier) VerifyDir(dir string) (*VerificationResult, error) {
	result := &VerificationResult{
		PluginDir: dir,
		StartedAt: time.Now(),
	}
	defer func() {
		result.CompletedAt = time.Now()
		result.ProcessingTime = result.CompletedAt.Sub(result.StartedAt)
	}()

	manifest, err := LoadManifestFromDir(dir)
	if err != nil {
		result.Reason = fmt.Sprintf("manifest unreadable: %v", err)
		return result, nil
	}
	result.PluginID = manifest.ID

	result.ManifestErrors = manifestErrors(ValidateManifest(manifest))
	result.PermissionIssues = v.checkPermissions(manifest)

	if !IsCompatibleAPIVersion(manifest.APIVersion, CurrentSDKAPIVersion) {
		result.ManifestErrors = append(result.ManifestErrors, ValidationError{
			Field:    "api_version",
			Message:  fmt.Sprintf("Incompatible API version: plugin requires %s, SDK is %s", manifest.APIVersion, CurrentSDKAPIVersion),
			Severity: "error",
		})
	}

	_, result.Resolvable = LookupModule(manifest.ID)
	if !result.Resolvable {
		result.Reason = fmt.Sprintf("no implementation registered for plugin %s", manifest.ID)
	}

	result.Valid = result.Resolvable &&
		len(result.ManifestErrors) == 0 &&
		len(result.PermissionIssues) == 0

	v.logger.WithFields(logrus.Fields{
		"plugin": result.PluginID,
		"dir":    dir,
		"valid":  result.Valid,
	}).Debug("plugin verification completed")

	return result, nil
}

// checkPermissions flags requested permissions outside the allow list
func (v *Verifier) checkPermissions(manifest *Manifest) []ValidationError {
	var issues []ValidationError

	for _, perm := range manifest.Permissions {
		if !v.allowedPermissions[perm] {
			issues = append(issues, ValidationError{
				Field:    "permissions",
				Message:  fmt.Sprintf("Permission not allowed: %s", perm),
				Severity: "error",
			})
		}
	}

	return issues
}
