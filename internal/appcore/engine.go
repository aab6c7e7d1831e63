// internal/appcore/engine.go
package appcore

import (
	"abtools-core/numbering"
	"abtools/internal/anarci"
	"abtools/internal/clibase"
	"abtools/internal/common"
	"abtools/internal/config"
	"abtools/internal/logging"
	"abtools/internal/numcache"
	"abtools/internal/runutil"
)

var logger = logging.GetLogger("abtools.app")

// LoadSettings reads the config file named by the engine flags and lays
// the explicit flags over it. The resulting log spec is applied.
func LoadSettings(e clibase.Engine) (config.Config, error) {
	cfg, err := config.Load(e.ConfigFile)
	if err != nil {
		return cfg, err
	}
	if e.Anarci != "" {
		cfg.Anarci.Path = e.Anarci
	}
	if e.NCPU > 0 {
		cfg.Anarci.NCPU = e.NCPU
	}
	if e.LogSpec != "" {
		cfg.Log.Spec = e.LogSpec
	}
	if err := logging.Configure(cfg.Log.Spec); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BuildEngine returns the ANARCI runner for cfg, behind a result cache
// when cache.ttl is positive. threads is the number of pipeline workers
// sharing the CPU budget.
func BuildEngine(cfg config.Config, threads int) (numbering.Engine, error) {
	r := &anarci.Runner{
		Path:    cfg.Anarci.Path,
		NCPU:    runutil.SplitCPU(threads, cfg.Anarci.NCPU),
		Timeout: cfg.AnarciTimeout(),
	}
	p, err := r.LookPath()
	if err != nil {
		return nil, err
	}
	logger.Debugf("using %s (ncpu %d, timeout %s)", p, r.NCPU, r.Timeout)
	ttl := cfg.CacheTTL()
	if ttl <= 0 {
		return r, nil
	}
	c := numcache.New(r, ttl, cfg.CacheCleanup())
	if cfg.Cache.Redis != "" {
		s, err := numcache.NewRedisStore(cfg.Cache.Redis)
		if err != nil {
			return nil, err
		}
		c.WithStore(s)
	}
	return c, nil
}

// NumberingOptions resolves scheme, chain and species from flags over cfg.
func NumberingOptions(cfg config.Config, scheme, chain string, germline bool, species []string) (numbering.Options, error) {
	if scheme == "" {
		scheme = cfg.Numbering.Scheme
	}
	if chain == "" {
		chain = cfg.Numbering.Chain
	}
	c, err := numbering.ParseChain(chain)
	if err != nil {
		return numbering.Options{}, err
	}
	if len(species) == 0 && germline {
		species = cfg.Numbering.Species
	}
	return numbering.Options{Scheme: scheme, Chain: c, Germline: germline, Species: common.UniqueLower(species)}, nil
}
