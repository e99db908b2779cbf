package generator

import (
	"context"
	"strconv"
	"strings"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// angularGenerator builds Angular projects with the ng CLI.
type angularGenerator struct {
	*base
}

func (g *angularGenerator) Generate(ctx context.Context) error {
	return g.run(ctx, g.baseScaffold)
}

// baseScaffold runs ng new in the parent of the target directory.
// --skip-git is always passed; version control is the pipeline's own
// tail step.
func (g *angularGenerator) baseScaffold(ctx context.Context) error {
	style := g.cfg.Style
	if style == "" {
		style = project.DefaultStyle
	}
	skipTests := g.cfg.Tests == nil || g.cfg.Tests.SkipTests

	argv := []string{
		"ng", "new", g.cfg.ProjectName,
		"--directory", g.cfg.ProjectName,
		"--skip-git",
		"--style=" + style,
		"--routing=" + strconv.FormatBool(g.cfg.Routing),
		"--ssr=false",
	}
	if g.cfg.Standalone {
		argv = append(argv, "--standalone")
	}
	argv = append(argv, "--skip-tests="+strconv.FormatBool(skipTests))
	if g.cfg.PackageManager != project.Npm {
		argv = append(argv, "--package-manager="+string(g.cfg.PackageManager))
	}

	g.log.Info("creating angular project", "cmd", strings.Join(argv, " "), "dir", g.cfg.ProjectPath)
	if _, err := g.inv.Run(ctx, argv, invoker.Opts{Dir: g.cfg.ProjectPath, Timeout: scaffoldTimeout}); err != nil {
		return &project.Error{Kind: project.KindCommandFailed, Msg: "angular project creation failed", Err: err}
	}
	return g.verifyScaffold()
}
