// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingTokenId Id = iota + 1
	ConfigFileReadErrorId
	InvalidEnvPatternId
	DockerNotFoundId
	ImagePullFailedId
	RenovateRunFailedId
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
	extLinks []HttpLink  // external links that might be useful for the user
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

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	missingTokenIssue = &Issue{
		id: MissingTokenId,
		mdMsg: `
# No token provided!

Renovate needs a platform token to read and update repositories, and no
token was found in either input channel.

## Sources checked (in order of precedence):
1. The ` + "`token`" + ` structured input
2. The ` + "`RENOVATE_TOKEN`" + ` environment variable

## Things you can try:
- Pass the token as an input:
~~~yaml
with:
  token: ${{ secrets.RENOVATE_TOKEN }}
~~~

- Or export it in the job environment:
~~~yaml
env:
  RENOVATE_TOKEN: ${{ secrets.RENOVATE_TOKEN }}
~~~`,
	}

	configFileReadErrorIssue = &Issue{
		id: ConfigFileReadErrorId,
		mdMsg: `
# Failed to read the configuration file!

A configuration file was resolved but could not be read or parsed.
A malformed file is treated as an error, never as "no configuration",
so that misconfiguration is not silently masked.

## Common causes:
- The path does not exist or is not readable by the runner
- The file is not valid JSON
- The path is relative to a different directory than expected

## Things you can try:
- Check the ` + "`configurationFile`" + ` input or ` + "`RENOVATE_CONFIG_FILE`" + ` value
- Validate the JSON, for example:
~~~
$ python3 -m json.tool renovate.json
~~~`,
	}

	invalidEnvPatternIssue = &Issue{
		id: InvalidEnvPatternId,
		mdMsg: `
# Invalid environment allow-list pattern!

The ` + "`env-regex`" + ` input must be a valid regular expression. Rather than
guessing a fallback, the run is aborted before anything else happens.

## Things you can try:
- Remove the ` + "`env-regex`" + ` input to use the default pattern
- Test your pattern, for example:
~~~
$ grep -P '<pattern>' /dev/null
~~~`,
	}

	dockerNotFoundIssue = &Issue{
		id: DockerNotFoundId,
		mdMsg: `
# Docker not found!

Renovate runs inside a container, but no usable Docker CLI was found on
this runner.

## Things you can try:
- Use a runner image that ships Docker (ubuntu-latest does)
- Install Docker: https://docs.docker.com/get-docker/
- Check that the docker daemon is running:
~~~
$ docker version
~~~`,
	}

	imagePullFailedIssue = &Issue{
		id: ImagePullFailedId,
		mdMsg: `
# Failed to pull the Renovate image!

The requested image could not be pulled from its registry.

## Common causes:
- A typo in the ` + "`renovate-image`" + ` or ` + "`renovate-version`" + ` input
- The registry is unreachable from this runner
- Rate limiting on the registry

## Things you can try:
- Verify the image reference:
~~~
$ docker pull ghcr.io/renovatebot/renovate:latest
~~~
- Pin a known-good version via the ` + "`renovate-version`" + ` input`,
	}

	renovateRunFailedIssue = &Issue{
		id: RenovateRunFailedId,
		mdMsg: `
# Renovate run failed!

The Renovate container exited with a non-zero status.

## Things you can try:
- Re-run with ` + "`LOG_LEVEL=debug`" + ` in the job environment
- Check the container output above for the first error
- Verify the token has sufficient permissions for the target repositories`,
	}

	issues = map[Id]*Issue{
		missingTokenIssue.Id():        missingTokenIssue,
		configFileReadErrorIssue.Id(): configFileReadErrorIssue,
		invalidEnvPatternIssue.Id():   invalidEnvPatternIssue,
		dockerNotFoundIssue.Id():      dockerNotFoundIssue,
		imagePullFailedIssue.Id():     imagePullFailedIssue,
		renovateRunFailedIssue.Id():   renovateRunFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
