// Package project reads Talon project metadata: the talon.yml manifest
// (declared tool references), the talon.lock file (the resolved package
// graph produced by restore), and the Go module identity of the project.
//
// The resolver chain consumes these as opaque providers: a project's
// declared tools, a package's install path under the store convention
// <root>/<name-lowercase>/<version>, and the dependency closure of a tool.
package project
