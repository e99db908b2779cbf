package generator

import (
	"context"
	"strings"

	"github.com/frontgen-dev/frontgen/internal/invoker"
	"github.com/frontgen-dev/frontgen/internal/project"
)

// vueGenerator builds Vue projects with @vue/cli's preset flow.
type vueGenerator struct {
	*base
}

func (g *vueGenerator) Generate(ctx context.Context) error {
	return g.run(ctx, g.baseScaffold)
}

// baseScaffold runs vue create non-interactively in the parent of the
// target directory. --force answers the overwrite prompt, which would
// otherwise hang a non-interactive run.
func (g *vueGenerator) baseScaffold(ctx context.Context) error {
	argv := []string{
		"vue", "create", g.cfg.ProjectName,
		"--default",
		"--force",
		"--packageManager=" + string(g.cfg.PackageManager),
	}
	g.log.Info("creating vue project", "cmd", strings.Join(argv, " "), "dir", g.cfg.ProjectPath)
	if _, err := g.inv.Run(ctx, argv, invoker.Opts{Dir: g.cfg.ProjectPath, Timeout: scaffoldTimeout}); err != nil {
		return &project.Error{Kind: project.KindCommandFailed, Msg: "vue project creation failed", Err: err}
	}
	return g.verifyScaffold()
}
