// Package functions builds the delivery compute functions in their
// packaging variants and stamps the asset metadata the deployment engine
// stages from.
package functions

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"

	deliveryinfra "github.com/farmlane/delivery-infra"
	"github.com/farmlane/delivery-infra/resources/lambda"
)

// Variant selects how a function's code is packaged.
type Variant string

const (
	// DefaultBuilt is compiled from source at synthesis time, falling back
	// to a containerized build when the local toolchain fails.
	DefaultBuilt Variant = "default-built"
	// PrebuiltArchive deploys an archive produced ahead of synthesis.
	PrebuiltArchive Variant = "prebuilt-archive"
	// CustomRuntimeArchive deploys a self-contained archive on a custom
	// runtime.
	CustomRuntimeArchive Variant = "custom-runtime-archive"
	// ContainerImage deploys from an image built from a named build file.
	ContainerImage Variant = "container-image"
)

// PopulateFunctionName is the one function that connects to the database
// writer endpoint directly instead of through the proxy.
const PopulateFunctionName = "PopulateFarmDb"

const (
	managedRuntime = "java11"
	customRuntime  = "provided.al2"

	functionTimeout = 60
	functionMemory  = 2048

	// Trims JIT warmup on the managed Java runtime.
	jitOptions = "-XX:+TieredCompilation -XX:TieredStopAtLevel=1"
)

// ErrMissingArtifact indicates a packaging input (archive or build file)
// does not exist on disk.
var ErrMissingArtifact = errors.New("packaging artifact not found")

// DatabaseEnv carries the connection settings wired into every function's
// environment.
type DatabaseEnv struct {
	Endpoint        string
	ProxyEndpoint   string
	Port            int
	Region          string
	User            string
	AdminSecretName string
	UserSecretName  string
}

// Request asks the factory for one function.
type Request struct {
	Name    string
	Variant Variant
	Role    any
	// BuildFile names the container build file relative to the source
	// directory. Only read for the ContainerImage variant.
	BuildFile string
}

// Spec is a built function with its asset metadata and the ARN it will
// have once deployed.
type Spec struct {
	Name     string
	Variant  Variant
	Function lambda.Function
	Metadata map[string]any
	Arn      string
}

// Factory builds function specs against one account, region and source
// tree.
type Factory struct {
	Region               string
	Account              string
	HandlerNamespace     string
	Network              lambda.Function_VpcConfig
	Database             DatabaseEnv
	SourceDir            string
	PrebuiltArchive      string
	CustomRuntimeArchive string
	Bundler              *Bundler
}

// Build packages one function according to its variant. Missing archives
// and build files fail synthesis; only the local source build has a
// fallback.
func (f *Factory) Build(req Request) (Spec, error) {
	switch req.Variant {
	case DefaultBuilt:
		return f.buildFromSource(req)
	case PrebuiltArchive:
		return f.buildFromArchive(req, f.PrebuiltArchive, managedRuntime)
	case CustomRuntimeArchive:
		return f.buildFromArchive(req, f.CustomRuntimeArchive, customRuntime)
	case ContainerImage:
		return f.buildFromImage(req)
	default:
		return Spec{}, errors.Newf("unknown packaging variant: %q", req.Variant)
	}
}

func (f *Factory) buildFromSource(req Request) (Spec, error) {
	hash, err := HashDirectory(f.SourceDir)
	if err != nil {
		return Spec{}, errors.Wrapf(err, "hashing %s", f.SourceDir)
	}

	metadata := map[string]any{
		deliveryinfra.MetadataAssetProperty: "Code",
		deliveryinfra.MetadataAssetHash:     hash,
	}

	outcome := f.Bundler.Bundle()
	if outcome.Failed() {
		metadata[deliveryinfra.MetadataAssetPath] = f.SourceDir
		metadata[deliveryinfra.MetadataAssetBundling] = f.Bundler.FallbackSpec()
	} else {
		metadata[deliveryinfra.MetadataAssetPath] = outcome.Artifact
	}

	return f.spec(req, metadata, managedRuntime), nil
}

func (f *Factory) buildFromArchive(req Request, archive, runtime string) (Spec, error) {
	if archive == "" {
		return Spec{}, errors.Wrapf(ErrMissingArtifact, "%s: no archive configured", req.Name)
	}
	if _, err := os.Stat(archive); err != nil {
		return Spec{}, errors.Wrapf(ErrMissingArtifact, "%s: %s", req.Name, archive)
	}

	hash, err := HashFile(archive)
	if err != nil {
		return Spec{}, errors.Wrapf(err, "hashing %s", archive)
	}

	metadata := map[string]any{
		deliveryinfra.MetadataAssetProperty: "Code",
		deliveryinfra.MetadataAssetPath:     archive,
		deliveryinfra.MetadataAssetHash:     hash,
	}
	return f.spec(req, metadata, runtime), nil
}

func (f *Factory) buildFromImage(req Request) (Spec, error) {
	if req.BuildFile == "" {
		return Spec{}, errors.Newf("%s: container variant requires a build file", req.Name)
	}
	buildFile := filepath.Join(f.SourceDir, req.BuildFile)
	if _, err := os.Stat(buildFile); err != nil {
		return Spec{}, errors.Wrapf(ErrMissingArtifact, "%s: %s", req.Name, buildFile)
	}

	hash, err := HashDirectory(f.SourceDir)
	if err != nil {
		return Spec{}, errors.Wrapf(err, "hashing %s", f.SourceDir)
	}

	metadata := map[string]any{
		deliveryinfra.MetadataAssetProperty:   "Code",
		deliveryinfra.MetadataAssetPath:       f.SourceDir,
		deliveryinfra.MetadataAssetDockerfile: req.BuildFile,
		deliveryinfra.MetadataAssetHash:       hash,
	}
	return f.spec(req, metadata, ""), nil
}

func (f *Factory) spec(req Request, metadata map[string]any, runtime string) Spec {
	fn := lambda.Function{
		FunctionName: req.Name,
		MemorySize:   functionMemory,
		Timeout:      functionTimeout,
		Role:         req.Role,
		Environment:  &lambda.Function_Environment{Variables: f.environment(req)},
		VpcConfig:    &f.Network,
		TracingConfig: &lambda.Function_Tracing{
			Mode: "Active",
		},
	}

	if req.Variant == ContainerImage {
		fn.PackageType = "Image"
	} else {
		fn.Runtime = runtime
		fn.Handler = f.HandlerNamespace + "." + req.Name
	}

	return Spec{
		Name:     req.Name,
		Variant:  req.Variant,
		Function: fn,
		Metadata: metadata,
		Arn:      f.arn(req.Name),
	}
}

func (f *Factory) arn(name string) string {
	return fmt.Sprintf("arn:aws:lambda:%s:%s:function:%s", f.Region, f.Account, name)
}

// environment assembles the variable set for one function. All functions
// get the database connection block; the managed Java runtime variants
// additionally carry the observability toggles.
func (f *Factory) environment(req Request) map[string]string {
	endpoint := f.Database.ProxyEndpoint
	if req.Name == PopulateFunctionName {
		endpoint = f.Database.Endpoint
	}

	vars := map[string]string{
		"DB_ENDPOINT":              endpoint,
		"DB_PORT":                  strconv.Itoa(f.Database.Port),
		"DB_REGION":                f.Database.Region,
		"DB_USER":                  f.Database.User,
		"DB_ADMIN_SECRET":          f.Database.AdminSecretName,
		"DB_USER_SECRET":           f.Database.UserSecretName,
		"CORS_ALLOW_ORIGIN_HEADER": "*",
	}

	switch req.Variant {
	case DefaultBuilt, PrebuiltArchive:
		vars["POWERTOOLS_METRICS_NAMESPACE"] = "DeliveryApi"
		vars["POWERTOOLS_SERVICE_NAME"] = "DeliveryApi"
		vars["POWERTOOLS_TRACER_CAPTURE_ERROR"] = "true"
		vars["POWERTOOLS_TRACER_CAPTURE_RESPONSE"] = "false"
		vars["POWERTOOLS_LOG_LEVEL"] = "INFO"
		vars["JAVA_TOOL_OPTIONS"] = jitOptions
	case ContainerImage:
		vars["JAVA_TOOL_OPTIONS"] = jitOptions
	}

	return vars
}
