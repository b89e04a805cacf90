// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	TutorConfigNotFoundId
	GitNotFoundId
	TutorNotFoundId
	MalformedPackageId
	CloneFailedId
	MountRegistrationFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load plugin configuration!

The picasso settings file could not be read.

## Things you can try:
- Check the file for YAML syntax errors
- Show the resolved settings path:
~~~
$ picasso config path
~~~
- Remove the file to fall back to defaults`,
	}

	tutorConfigNotFoundIssue = &Issue{
		id: TutorConfigNotFoundId,
		mdMsg: `
# No Tutor configuration found!

There is no config.yml in the resolved Tutor root, so there is nothing to
discover private packages from.

## Things you can try:
- Point at the right project root:
~~~
$ picasso --root /path/to/tutor-root enable-private-packages
~~~
- Or set the environment variable Tutor itself uses:
~~~
$ export TUTOR_ROOT=/path/to/tutor-root
~~~
- Generate the configuration if the project is new:
~~~
$ tutor config save
~~~`,
		docLinks: []HttpLink{"https://docs.tutor.edly.io/configuration.html"},
	}

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# git not found!

Cloning private packages requires the git binary, and it was not found on
your PATH.

## Things you can try:
- Install git with your platform's package manager
- Point the plugin at a specific binary:
~~~
$ export PICASSO_CLI_GIT_BINARY=/usr/local/bin/git
~~~`,
	}

	tutorNotFoundIssue = &Issue{
		id: TutorNotFoundId,
		mdMsg: `
# tutor not found!

Registering private packages requires the tutor CLI, and it was not found on
your PATH.

## Things you can try:
- Install tutor:
~~~
$ pip install tutor
~~~
- Point the plugin at a specific binary:
~~~
$ export PICASSO_CLI_TUTOR_BINARY=/opt/tutor/bin/tutor
~~~`,
		docLinks: []HttpLink{"https://docs.tutor.edly.io/install.html"},
	}

	malformedPackageIssue = &Issue{
		id: MalformedPackageId,
		mdMsg: `
# Malformed private package declaration!

A PICASSO_*_DPKG setting is missing one or more of the required fields:
name, repo, version. Nothing was materialized.

## Expected shape:
~~~yaml
PICASSO_XBLOCK_DPKG:
  name: my-xblock
  repo: https://github.com/org/my-xblock.git
  version: main
~~~

## Things you can try:
- Fix the declaration and save it:
~~~
$ tutor config save --set 'PICASSO_XBLOCK_DPKG={"name": "my-xblock", "repo": "...", "version": "main"}'
~~~
- Inspect what the plugin currently sees:
~~~
$ picasso packages list
~~~`,
	}

	cloneFailedIssue = &Issue{
		id: CloneFailedId,
		mdMsg: `
# Failed to clone a private package!

git exited with an error while cloning a declared repository. The run was
aborted; already-materialized packages are left in place and will be
re-cloned on the next run.

## Common causes:
- The version field names a branch or tag that does not exist
- The repository URL is wrong or requires credentials
- No network access to the git host

## Things you can try:
- Clone manually with the same arguments to see the full error
- Verify your SSH keys or access tokens for private repositories`,
	}

	mountRegistrationFailedIssue = &Issue{
		id: MountRegistrationFailedId,
		mdMsg: `
# Failed to register the package with Tutor!

The cloned checkout exists, but tutor rejected the mount registration.

## Things you can try:
- Run the registration manually to see tutor's full error:
~~~
$ tutor mounts add <requirements-path>/<name>
~~~
- Check that your tutor version supports the mounts command (>= 17.0.0)`,
		docLinks: []HttpLink{"https://docs.tutor.edly.io/dev.html#bind-mounts"},
	}

	issues = map[Id]*Issue{
		ConfigLoadFailedId:        configLoadFailedIssue,
		TutorConfigNotFoundId:     tutorConfigNotFoundIssue,
		GitNotFoundId:             gitNotFoundIssue,
		TutorNotFoundId:           tutorNotFoundIssue,
		MalformedPackageId:        malformedPackageIssue,
		CloneFailedId:             cloneFailedIssue,
		MountRegistrationFailedId: mountRegistrationFailedIssue,
	}
)

// Get returns the catalog entry for id, or nil when the id is unknown.
func Get(id Id) *Issue {
	return issues[id]
}

// Ids returns all catalog ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}
