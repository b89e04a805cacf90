// SPDX-License-Identifier: MPL-2.0

package hostcli

import (
	"context"
	"fmt"
)

// DefaultGitBinary is the binary used when no override is configured.
const DefaultGitBinary = "git"

// GitCLI wraps the git binary. It embeds BaseCLI for command execution.
type GitCLI struct {
	*BaseCLI
}

// NewGitCLI creates a git wrapper. Use WithBinary to point at a non-default
// git executable.
func NewGitCLI(opts ...Option) *GitCLI {
	return &GitCLI{BaseCLI: newBaseCLI(DefaultGitBinary, opts...)}
}

// Clone checks out repo at the given branch or tag ref into dest.
//
// Generated command: git clone -b <ref> <repo> <dest>
func (g *GitCLI) Clone(ctx context.Context, repo, ref, dest string) error {
	if err := g.RunStatus(ctx, "clone", "-b", ref, repo, dest); err != nil {
		return fmt.Errorf("cloning %s at %s: %w", repo, ref, err)
	}
	return nil
}
