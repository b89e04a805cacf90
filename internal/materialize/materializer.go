// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"picasso-cli/internal/discovery"
	"picasso-cli/internal/hostcli"
	"picasso-cli/internal/issue"

	"github.com/charmbracelet/log"
)

// ErrNoRegistrar indicates Run was given packages but no registration variant.
var ErrNoRegistrar = errors.New("no registrar configured")

type (
	// Option configures a Materializer.
	Option func(*Materializer)

	// Materializer clones private packages into the requirements directory
	// and registers each checkout through the configured Registrar.
	Materializer struct {
		requirementsDir string
		git             *hostcli.GitCLI
		registrar       Registrar
		logger          *log.Logger
		dryRun          bool
	}
)

// RequirementsDir returns the directory private package checkouts live in
// for the given Tutor root.
func RequirementsDir(root string) string {
	return filepath.Join(root, "env", "build", "openedx", "requirements")
}

// WithLogger sets the progress logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Materializer) {
		m.logger = logger
	}
}

// WithDryRun makes Run describe every side effect instead of performing it.
func WithDryRun(dryRun bool) Option {
	return func(m *Materializer) {
		m.dryRun = dryRun
	}
}

// New creates a Materializer for the given Tutor root. The registrar may be
// nil only when Run will never see a non-empty package list.
func New(root string, git *hostcli.GitCLI, registrar Registrar, opts ...Option) *Materializer {
	m := &Materializer{
		requirementsDir: RequirementsDir(root),
		git:             git,
		registrar:       registrar,
		logger:          log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run materializes the given descriptors sequentially, in discovery order.
// The first failure of any kind aborts the run; remaining descriptors are not
// processed and already-materialized ones are not rolled back.
func (m *Materializer) Run(ctx context.Context, pkgs []discovery.Descriptor) error {
	if len(pkgs) == 0 {
		m.logger.Info("no private packages declared")
		return nil
	}
	if m.registrar == nil {
		return ErrNoRegistrar
	}

	if m.dryRun {
		m.logger.Info("dry-run: would create requirements directory", "path", m.requirementsDir)
	} else if err := os.MkdirAll(m.requirementsDir, 0o755); err != nil {
		return issue.NewErrorContext().
			WithOperation("create requirements directory").
			WithResource(m.requirementsDir).
			WithSuggestion("Check permissions on the Tutor root").
			Wrap(err).
			BuildError()
	}

	for _, pkg := range pkgs {
		if err := m.materialize(ctx, pkg); err != nil {
			return err
		}
	}
	return nil
}

// materialize processes a single descriptor: validate, reset the destination,
// clone, register.
func (m *Materializer) materialize(ctx context.Context, pkg discovery.Descriptor) error {
	if err := pkg.Validate(); err != nil {
		return issue.NewErrorContext().
			WithOperation("read private package declaration").
			WithResource(pkg.Key).
			WithSuggestion("Declare name, repo, and version under the setting").
			WithSuggestion("Run 'picasso packages list' to inspect all declarations").
			Wrap(err).
			BuildError()
	}

	dest := filepath.Join(m.requirementsDir, pkg.Name)

	if err := m.resetDestination(dest, pkg); err != nil {
		return err
	}

	if m.dryRun {
		m.logger.Info("dry-run: would clone",
			"key", pkg.Key, "repo", pkg.Repo, "version", pkg.Version, "dest", dest)
		m.logger.Info("dry-run: would register", "action", m.registrar.Describe(pkg.Name))
		return nil
	}

	m.logger.Info("cloning private package",
		"name", pkg.Name, "repo", pkg.Repo, "version", pkg.Version)
	if err := m.git.Clone(ctx, pkg.Repo, pkg.Version, dest); err != nil {
		return issue.NewErrorContext().
			WithOperation("clone private package").
			WithResource(pkg.Key).
			WithSuggestion("Check that the version field names an existing branch or tag").
			WithSuggestion("Verify access credentials for the repository").
			Wrap(err).
			BuildError()
	}

	m.logger.Info("registering private package", "name", pkg.Name)
	if err := m.registrar.Register(ctx, pkg.Name); err != nil {
		return issue.NewErrorContext().
			WithOperation("register private package").
			WithResource(pkg.Key).
			WithSuggestion(fmt.Sprintf("Retry manually: %s", m.registrar.Describe(pkg.Name))).
			Wrap(err).
			BuildError()
	}

	return nil
}

// resetDestination removes a stale checkout. Removal is unconditional: a
// leftover from an interrupted run is indistinguishable from a complete
// checkout, so the clone always starts from nothing.
func (m *Materializer) resetDestination(dest string, pkg discovery.Descriptor) error {
	if _, err := os.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return issue.NewErrorContext().
			WithOperation("inspect package destination").
			WithResource(dest).
			Wrap(err).
			BuildError()
	}

	if m.dryRun {
		m.logger.Info("dry-run: would remove stale checkout", "key", pkg.Key, "path", dest)
		return nil
	}

	m.logger.Debug("removing stale checkout", "path", dest)
	if err := os.RemoveAll(dest); err != nil {
		return issue.NewErrorContext().
			WithOperation("remove stale checkout").
			WithResource(dest).
			WithSuggestion("Check permissions on the requirements directory").
			Wrap(err).
			BuildError()
	}
	return nil
}
