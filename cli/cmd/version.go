package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardnew/stringed/pkg"
)

// Version prints the program banner and version.
type Version struct {
	Stdout io.Writer `kong:"-"`
}

// Run executes the version command.
func (v *Version) Run(context.Context) error {
	_, err := fmt.Fprintln(orStdout(v.Stdout), pkg.Banner, pkg.Version)

	return err
}
