// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DriversDirNotFoundId Id = iota + 1
	CloneFailedId
	FallbackExhaustedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links that might be useful for the user
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

	driversDirNotFoundIssue = &Issue{
		id: DriversDirNotFoundId,
		mdMsg: `
# No drivers directory found!

The current directory does not look like a kernel source tree.
We checked both conventional layouts:

1. ` + "`common/drivers`" + ` (ACK/GKI repo checkouts)
2. ` + "`drivers`" + ` (plain kernel trees)

## Things you can try:
- Change to the kernel source root before running modwire:
~~~
$ cd /path/to/kernel && modwire
~~~
- Or point modwire at it directly:
~~~
$ modwire -C /path/to/kernel
~~~`,
		docLinks: []HttpLink{
			"https://source.android.com/docs/core/architecture/kernel/generic-kernel-image",
		},
	}

	cloneFailedIssue = &Issue{
		id: CloneFailedId,
		mdMsg: `
# Failed to clone the module repository!

The initial clone is the one git step modwire cannot recover from.

## Common causes:
- No network connectivity, or a proxy blocking git transports
- A wrong ` + "`repo_url`" + ` in your config file
- The destination directory is not writable

## Things you can try:
- Clone manually to see the full git output:
~~~
$ git clone <repo_url>
~~~
- Check the effective configuration:
~~~
$ modwire config show
~~~`,
	}

	fallbackExhaustedIssue = &Issue{
		id: FallbackExhaustedId,
		mdMsg: `
# Could not check out any revision!

The requested revision failed, the repository has no tags, and neither a
` + "`main`" + ` nor a ` + "`master`" + ` branch could be checked out. The working
copy was left on its current ref.

## Things you can try:
- List what the repository actually offers:
~~~
$ modwire list
~~~
- Pass an explicit branch or commit:
~~~
$ modwire <branch-or-commit>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file exists but could not be read or validated.

## Things you can try:
- Check the TOML syntax of the file reported above
- Print the path modwire is reading from:
~~~
$ modwire config path
~~~
- Regenerate a known-good default config:
~~~
$ modwire config init --force
~~~`,
	}

	issues = map[Id]*Issue{
		driversDirNotFoundIssue.Id(): driversDirNotFoundIssue,
		cloneFailedIssue.Id():        cloneFailedIssue,
		fallbackExhaustedIssue.Id():  fallbackExhaustedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
