package functions

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Defaults for the source build. The fallback image carries the same
// toolchain the functions run on.
const (
	fallbackBuildImage = "public.ecr.aws/sam/build-java11:latest"
)

var (
	defaultLocalCommand  = []string{"bash", "-c", "./gradlew build"}
	defaultRemoteCommand = []string{"/bin/sh", "-c", "./gradlew build && cp build/distributions/lambda.zip /asset-output/"}
)

// Outcome is the result of one bundling attempt.
type Outcome struct {
	// Artifact is the built archive path. Empty when the local build
	// failed and the containerized fallback applies.
	Artifact string
	// Reason records why the local build was abandoned.
	Reason string
}

// Failed reports whether the local build produced no artifact.
func (o Outcome) Failed() bool { return o.Artifact == "" }

// Bundler runs the local source build once per synthesis pass. The build
// runs synchronously with no timeout; a failure is not fatal, it shifts
// packaging to the containerized fallback recorded in asset metadata.
type Bundler struct {
	// SourceDir is the working directory of the build.
	SourceDir string
	// Artifact is where the local build leaves the archive. Defaults to
	// build/distributions/lambda.zip under SourceDir.
	Artifact string
	// Command overrides the local build argv.
	Command []string
	// Image overrides the fallback build image.
	Image string
	// RemoteCommand overrides the argv run inside the fallback image.
	RemoteCommand []string

	Log *zap.Logger

	once    sync.Once
	outcome Outcome
}

// Bundle attempts the local build. The result is memoized so every
// function sharing the source tree packages the same artifact.
func (b *Bundler) Bundle() Outcome {
	b.once.Do(func() {
		b.outcome = b.run()
	})
	return b.outcome
}

func (b *Bundler) run() Outcome {
	argv := b.Command
	if len(argv) == 0 {
		argv = defaultLocalCommand
	}

	log := b.logger()
	log.Info("building function package locally",
		zap.String("dir", b.SourceDir),
		zap.Strings("command", argv))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = b.SourceDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("local build failed, packaging falls back to a containerized build",
			zap.Error(err),
			zap.ByteString("output", output))
		return Outcome{Reason: err.Error()}
	}

	artifact := b.artifactPath()
	if _, err := os.Stat(artifact); err != nil {
		log.Warn("local build left no artifact, packaging falls back to a containerized build",
			zap.String("artifact", artifact))
		return Outcome{Reason: "artifact missing: " + artifact}
	}

	return Outcome{Artifact: artifact}
}

// FallbackSpec describes the containerized build the deployment engine
// runs when the local build did not produce an artifact.
func (b *Bundler) FallbackSpec() map[string]any {
	image := b.Image
	if image == "" {
		image = fallbackBuildImage
	}
	command := b.RemoteCommand
	if len(command) == 0 {
		command = defaultRemoteCommand
	}
	return map[string]any{
		"image":   image,
		"command": command,
	}
}

func (b *Bundler) artifactPath() string {
	if b.Artifact != "" {
		return b.Artifact
	}
	return filepath.Join(b.SourceDir, "build", "distributions", "lambda.zip")
}

func (b *Bundler) logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}
