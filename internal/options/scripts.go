package options

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ScriptHooks are the lifecycle script names an RPM spec file knows
var ScriptHooks = []string{"pre", "post", "preun", "postun"}

// ReadScripts reads the file of every recognized hook in scripts and returns
// the bodies keyed by hook. Unknown hooks are logged and skipped.
func ReadScripts(ctx context.Context, scripts map[string]string, logger logrus.FieldLogger) (map[string]string, error) {
	known := make(map[string]bool, len(ScriptHooks))
	for _, hook := range ScriptHooks {
		known[hook] = true
	}

	hooks := make([]string, 0, len(scripts))
	for hook := range scripts {
		if !known[hook] {
			logger.Debugf("Ignoring unknown script hook %q", hook)
			continue
		}
		hooks = append(hooks, hook)
	}
	sort.Strings(hooks)

	var mu sync.Mutex
	bodies := make(map[string]string, len(hooks))

	g, ctx := errgroup.WithContext(ctx)
	for _, hook := range hooks {
		hook := hook
		path := scripts[hook]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			logger.Debugf("Reading %s script from %s", hook, path)
			data, err := os.ReadFile(path)
			if err != nil {
				return models.Wrap(models.ErrFileRead, fmt.Sprintf("reading %s script", hook), err)
			}

			mu.Lock()
			bodies[hook] = string(data)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

func applyScripts(cfg *models.Configuration, bodies map[string]string) {
	cfg.Pre = bodies["pre"]
	cfg.Post = bodies["post"]
	cfg.Preun = bodies["preun"]
	cfg.Postun = bodies["postun"]
}
